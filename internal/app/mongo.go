package app

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adanyl0v/go-task-manager/internal/config"
	mongostorage "github.com/adanyl0v/go-task-manager/internal/storage/mongo"
)

var globalMongoClient *mongo.Client

func mustConnectMongo() *mongostorage.Store {
	cfg := config.Global().Mongo

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout)

	var err error
	globalMongoClient, err = mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to mongo")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = globalMongoClient.Ping(ctx, nil)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping mongo")
		panic(err)
	}
	globalLogger.Info().
		Str("database", cfg.Database).
		Msg("connected to mongo")

	store := mongostorage.New(globalMongoClient.Database(cfg.Database))
	err = store.EnsureIndexes(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to create mongo indexes")
		panic(err)
	}

	return store
}

func disconnectMongo() {
	ctx, cancel := context.WithTimeout(context.Background(), config.Global().Mongo.PingTimeout)
	defer cancel()

	err := globalMongoClient.Disconnect(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to disconnect from mongo")
		return
	}
	globalLogger.Info().Msg("disconnected from mongo")
}
