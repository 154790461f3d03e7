// Package store defines the persistence boundary the sidebar state saves
// through. The sidebar never talks SQL; it posts records to the local
// persistence server and keeps a local fallback when that server is down.
package store

import (
	"context"
)

//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/store.go -package=store_mocks

// SaveResult carries the server-assigned ids for a persisted record.
type SaveResult struct {
	ClientID  string `json:"clientId"`
	BookingID string `json:"bookingId"`
}

// Store persists sidebar records. Lookup methods return a nil map when the
// record does not exist; a network failure surfaces as
// failure.ServerNotRunning so callers can degrade to local-only mode.
type Store interface {
	Save(ctx context.Context, record map[string]any) (*SaveResult, error)
	Load(ctx context.Context, clientID string) (map[string]any, error)
	SearchClient(ctx context.Context, email, name string) (map[string]any, error)
	GetBookings(ctx context.Context, clientID string) ([]map[string]any, error)
	GetSettings(ctx context.Context) (map[string]any, error)
	PutSettings(ctx context.Context, settings map[string]any) error
}
