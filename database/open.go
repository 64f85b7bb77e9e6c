package database

import (
	"errors"
	"fmt"

	"trilhas/config"

	"cloud.google.com/go/firestore"
)

// OpenStore returns the DocumentStore selected by STORE_DRIVER. fs is only
// used by the firestore driver; the mongo driver connects via InitDB.
func OpenStore(fs *firestore.Client) (DocumentStore, error) {
	timeout := config.AppConfig.StoreTimeout
	switch config.AppConfig.StoreDriver {
	case config.StoreFirestore:
		if fs == nil {
			return nil, errors.New("firestore driver selected without a Firestore client")
		}
		return NewFirestoreStore(fs, timeout), nil
	case config.StoreMongo:
		if err := InitDB(); err != nil {
			return nil, err
		}
		return NewMongoStore(MongoClient.Database(config.AppConfig.DatabaseName), timeout), nil
	case config.StoreMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", config.AppConfig.StoreDriver)
	}
}
