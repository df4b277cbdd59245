package store

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"kottage-backend/internal/logger"
)

// FirebaseStore is the production backend, talking to Firebase Realtime
// Database. Multi-path updates map directly onto the database's atomic
// update operation; CreateIfAbsent maps onto a database transaction on the
// target path.
type FirebaseStore struct {
	client *db.Client
}

// NewFirebaseStore connects to the Realtime Database at databaseURL.
// credentialsFile may be empty, in which case application default
// credentials are used.
func NewFirebaseStore(ctx context.Context, databaseURL, credentialsFile string) (*FirebaseStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseURL}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to realtime database: %w", err)
	}

	logger.Info("Connected to Firebase Realtime Database", "database_url", databaseURL)
	return &FirebaseStore{client: client}, nil
}

func (s *FirebaseStore) Get(ctx context.Context, path string, v any) error {
	logger.StoreCall("get", path)
	err := s.client.NewRef(path).Get(ctx, v)
	logger.StoreResult("get", path, err)
	return err
}

func (s *FirebaseStore) Set(ctx context.Context, path string, v any) error {
	ref := s.client.NewRef(path)
	if v == nil {
		logger.StoreCall("delete", path)
		err := ref.Delete(ctx)
		logger.StoreResult("delete", path, err)
		return err
	}
	logger.StoreCall("set", path)
	err := ref.Set(ctx, v)
	logger.StoreResult("set", path, err)
	return err
}

func (s *FirebaseStore) MultiUpdate(ctx context.Context, updates map[string]any) error {
	logger.StoreCall("multi-update", fmt.Sprintf("%d paths", len(updates)))
	err := s.client.NewRef("/").Update(ctx, updates)
	logger.StoreResult("multi-update", "/", err)
	return err
}

func (s *FirebaseStore) Query(ctx context.Context, path, field string, value any, out any) error {
	logger.StoreCall("query", path, "field", field)
	err := s.client.NewRef(path).OrderByChild(field).EqualTo(value).Get(ctx, out)
	logger.StoreResult("query", path, err)
	return err
}

func (s *FirebaseStore) CreateIfAbsent(ctx context.Context, path string, v any) error {
	logger.StoreCall("create-if-absent", path)
	err := s.client.NewRef(path).Transaction(ctx, func(node db.TransactionNode) (any, error) {
		var current any
		if err := node.Unmarshal(&current); err != nil {
			return nil, err
		}
		if current != nil {
			return nil, ErrAlreadyExists
		}
		return v, nil
	})
	logger.StoreResult("create-if-absent", path, err)
	return err
}
