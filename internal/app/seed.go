package app

import (
	"context"

	"github.com/adanyl0v/go-task-manager/internal/config"
	"github.com/adanyl0v/go-task-manager/internal/seed"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

func MustSeed(opts seed.Options) {
	cfg := config.Global()
	store := Store()

	userService := services.NewUserService(
		Logger("users"),
		store,
		cfg.JWT.Issuer,
		[]byte(cfg.JWT.SigningKey),
		cfg.JWT.AccessTokenTTL,
	)

	result, err := seed.New(Logger("seed"), store, userService).Run(context.Background(), opts)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to seed database")
		panic(err)
	}
	globalLogger.Info().
		Str("email", result.User.Email).
		Int("projects", len(result.Projects)).
		Int("tasks", len(result.Tasks)).
		Msg("database seeded")
}
