package app

import (
	"fmt"

	"github.com/adanyl0v/go-task-manager/internal/config"
	"github.com/adanyl0v/go-task-manager/internal/storage"
	"github.com/adanyl0v/go-task-manager/internal/storage/memory"
)

var (
	globalStore      storage.Store
	disconnectStores = func() {}
)

// MustConnectStorage opens the backend selected by STORAGE_DRIVER.
func MustConnectStorage() {
	driver := config.Global().Storage.Driver
	switch driver {
	case config.StorageMongo:
		globalStore = mustConnectMongo()
		disconnectStores = disconnectMongo
	case config.StoragePostgres:
		globalStore = mustConnectPostgres()
		disconnectStores = disconnectPostgres
	case config.StorageMemory:
		globalStore = memory.New()
		globalLogger.Warn().Msg("using in-memory storage, data will not survive a restart")
	default:
		globalLogger.Error().
			Str("driver", driver).
			Msg("unknown storage driver")
		panic(fmt.Errorf("unknown storage driver: %s", driver))
	}
}

func DisconnectStorage() {
	disconnectStores()
}

func Store() storage.Store {
	return globalStore
}
