package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements DocumentStore on Cloud Firestore.
type FirestoreStore struct {
	client  *firestore.Client
	timeout time.Duration
}

// NewFirestoreStore wraps a Firestore client. timeout bounds each one-shot call.
func NewFirestoreStore(client *firestore.Client, timeout time.Duration) *FirestoreStore {
	return &FirestoreStore{client: client, timeout: timeout}
}

func (s *FirestoreStore) GetAll(ctx context.Context, collection string) ([]Document, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore: read %s: %w", collection, err)
	}
	return firestoreDocuments(snaps), nil
}

func (s *FirestoreStore) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	snaps, err := s.query(collection, filter).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore: query %s: %w", collection, err)
	}
	return firestoreDocuments(snaps), nil
}

func (s *FirestoreStore) GetOne(ctx context.Context, collection, id string) (*Document, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("firestore: read %s/%s: %w", collection, id, err)
	}
	return &Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *FirestoreStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	ref, _, err := s.client.Collection(collection).Add(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("firestore: create in %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, fields); err != nil {
		return fmt.Errorf("firestore: set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if len(fields) == 0 {
		_, err := s.GetOne(ctx, collection, id)
		return err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}
	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("firestore: update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore: delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Subscribe attaches a snapshot listener. Every listener event carries the
// complete result set, which is handed to fn as is.
func (s *FirestoreStore) Subscribe(ctx context.Context, collection string, filter Filter, fn SnapshotFunc) (*Subscription, error) {
	sub, subCtx := newSubscription(ctx)

	it := s.query(collection, filter).Snapshots(subCtx)

	go func() {
		var err error
		defer func() {
			it.Stop()
			sub.finish(err)
		}()
		for {
			snap, nextErr := it.Next()
			if nextErr != nil {
				if subCtx.Err() == nil && status.Code(nextErr) != codes.Canceled {
					err = fmt.Errorf("firestore: listen %s: %w", collection, nextErr)
				}
				return
			}
			snaps, readErr := snap.Documents.GetAll()
			if readErr != nil {
				if subCtx.Err() == nil {
					err = fmt.Errorf("firestore: read snapshot of %s: %w", collection, readErr)
				}
				return
			}
			if subCtx.Err() != nil {
				return
			}
			fn(subCtx, firestoreDocuments(snaps))
		}
	}()
	return sub, nil
}

func (s *FirestoreStore) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.Collections(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firestore: ping: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) query(collection string, filter Filter) firestore.Query {
	q := s.client.Collection(collection).Query
	if filter.Field != "" {
		q = q.Where(filter.Field, "==", filter.Value)
	}
	return q
}

func firestoreDocuments(snaps []*firestore.DocumentSnapshot) []Document {
	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs
}
