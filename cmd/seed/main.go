package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/go-task-manager/internal/app"
	"github.com/adanyl0v/go-task-manager/internal/seed"
)

func main() {
	var opts seed.Options
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all stored data with a demo user, projects and tasks",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			app.InitDefaultLogger()
			app.MustReadEnv()
			app.MustInitApplicationLogger()

			app.MustConnectStorage()
			defer app.DisconnectStorage()

			app.MustSeed(opts)
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", seed.DefaultName, "name of the seeded user")
	cmd.Flags().StringVar(&opts.Email, "email", seed.DefaultEmail, "email of the seeded user")
	cmd.Flags().StringVar(&opts.Password, "password", seed.DefaultPassword, "password of the seeded user")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
