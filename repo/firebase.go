package repo

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// FirebaseBackend stores each record as a JSON string under a Realtime
// Database path.
type FirebaseBackend struct {
	app    *firebase.App
	client *db.Client
}

// NewFirebaseBackend creates a new Firebase backend
func NewFirebaseBackend(ctx context.Context, serviceAccountKeyPath string, databaseURL string) (*FirebaseBackend, error) {
	// Load the service account key file
	opt := option.WithCredentialsFile(serviceAccountKeyPath)

	config := &firebase.Config{
		DatabaseURL: databaseURL,
	}
	app, err := firebase.NewApp(ctx, config, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting database client: %w", err)
	}

	return &FirebaseBackend{
		app:    app,
		client: client,
	}, nil
}

// firebasePath turns "corsicaTrip.users" into "corsicaTrip/users"; dots are
// not allowed in database keys.
func firebasePath(key string) string {
	return strings.ReplaceAll(key, ".", "/")
}

func (fb *FirebaseBackend) Get(ctx context.Context, key string) ([]byte, error) {
	ref := fb.client.NewRef(firebasePath(key))
	var value string
	if err := ref.Get(ctx, &value); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", key, err)
	}
	// a missing path reads as null
	if value == "" {
		return nil, ErrKeyNotFound
	}
	return []byte(value), nil
}

func (fb *FirebaseBackend) Set(ctx context.Context, key string, value []byte) error {
	ref := fb.client.NewRef(firebasePath(key))
	if err := ref.Set(ctx, string(value)); err != nil {
		return fmt.Errorf("error writing %s: %w", key, err)
	}
	return nil
}

// Close is a no-op: the Firebase app holds no connection of its own.
func (fb *FirebaseBackend) Close() error {
	return nil
}
