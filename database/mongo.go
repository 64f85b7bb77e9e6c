package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements DocumentStore on MongoDB. Documents are keyed by a
// string _id; live queries use change streams, which need a replica set.
type MongoStore struct {
	db      *mongo.Database
	timeout time.Duration
}

// NewMongoStore returns a store over db. timeout bounds each one-shot call.
func NewMongoStore(db *mongo.Database, timeout time.Duration) *MongoStore {
	return &MongoStore{db: db, timeout: timeout}
}

func (s *MongoStore) GetAll(ctx context.Context, collection string) ([]Document, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.find(ctx, collection, Filter{})
}

func (s *MongoStore) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.find(ctx, collection, filter)
}

func (s *MongoStore) GetOne(ctx context.Context, collection, id string) (*Document, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var raw bson.M
	if err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("mongo: read %s/%s: %w", collection, id, err)
	}
	doc := mongoDocument(raw)
	return &doc, nil
}

func (s *MongoStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	id := primitive.NewObjectID().Hex()
	doc := bson.M{"_id": id}
	for k, v := range fields {
		doc[k] = v
	}
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("mongo: create in %s: %w", collection, err)
	}
	return id, nil
}

func (s *MongoStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	doc := bson.M{}
	for k, v := range fields {
		doc[k] = v
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return fmt.Errorf("mongo: set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if len(fields) == 0 {
		_, err := s.GetOne(ctx, collection, id)
		return err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("mongo: update %s/%s: %w", collection, id, err)
	}
	if result.MatchedCount == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongo: delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Subscribe opens a change stream on the collection and re-runs the filtered
// query after each event. The stream is opened before the initial read so no
// change between the two is lost.
func (s *MongoStore) Subscribe(ctx context.Context, collection string, filter Filter, fn SnapshotFunc) (*Subscription, error) {
	sub, subCtx := newSubscription(ctx)

	stream, err := s.db.Collection(collection).Watch(subCtx, mongo.Pipeline{})
	if err != nil {
		sub.finish(nil)
		return nil, fmt.Errorf("mongo: watch %s: %w", collection, err)
	}

	go func() {
		var err error
		defer func() {
			_ = stream.Close(context.Background())
			sub.finish(err)
		}()

		emit := func() error {
			readCtx, cancel := withTimeout(subCtx, s.timeout)
			defer cancel()
			docs, err := s.find(readCtx, collection, filter)
			if err != nil {
				return err
			}
			if subCtx.Err() == nil {
				fn(subCtx, docs)
			}
			return nil
		}

		if err = emit(); err != nil {
			return
		}
		for stream.Next(subCtx) {
			if err = emit(); err != nil {
				return
			}
		}
		if subCtx.Err() == nil {
			err = stream.Err()
		}
	}()
	return sub, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.db.Client().Ping(ctx, nil)
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.db.Client().Disconnect(ctx)
}

func (s *MongoStore) find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	query := bson.M{}
	if filter.Field != "" {
		query[filter.Field] = filter.Value
	}
	cursor, err := s.db.Collection(collection).Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("mongo: read %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("mongo: decode %s: %w", collection, err)
		}
		docs = append(docs, mongoDocument(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongo: read %s: %w", collection, err)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func mongoDocument(raw bson.M) Document {
	data := make(map[string]any, len(raw))
	var id string
	for k, v := range raw {
		if k == "_id" {
			switch t := v.(type) {
			case string:
				id = t
			case primitive.ObjectID:
				id = t.Hex()
			default:
				id = fmt.Sprint(t)
			}
			continue
		}
		data[k] = v
	}
	return Document{ID: id, Data: data}
}
