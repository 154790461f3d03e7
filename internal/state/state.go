// Package state holds the sidebar's working memory: the client and booking
// being edited, the multi-client list a directory page yields, and the user
// settings. It survives page shows through the host cache and persists through
// the record store.
package state

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"leedz/internal/entity"
	"leedz/internal/store"
	"leedz/internal/store/hostcache"
	"leedz/shared/constant"
	"leedz/shared/failure"
)

// State is the hierarchical working record. Clients is populated only when a
// directory page yielded several people; Client then tracks the selected one.
type State struct {
	mu sync.Mutex

	Client   *entity.Client
	Clients  []*entity.Client
	Booking  *entity.Booking
	Settings *entity.Settings

	// Status is saved once the record store accepted the record, local when
	// the sidebar is running degraded off the host cache.
	Status string

	store store.Store
	cache hostcache.Cache
}

// New returns an empty State wired to its persistence backends.
func New(recordStore store.Store, cache hostcache.Cache) *State {
	return &State{
		Client:   entity.NewClient(map[string]any{}),
		Booking:  entity.NewBooking(map[string]any{}),
		Settings: entity.NewSettings(map[string]any{}),
		Status:   constant.StateStatusLocal,
		store:    recordStore,
		cache:    cache,
	}
}

// Load rehydrates the state, preferring the record store over the host cache:
// the cached blob supplies the client id, and a fresh database read replaces
// the cached record when the server answers. An offline server or a missing
// row keeps the cached state; an empty cache leaves the state as-is.
func (s *State) Load(ctx context.Context) error {
	blob, err := s.cache.LoadState(ctx)
	if err != nil {
		return err
	}

	if blob == nil {
		return nil
	}

	s.mu.Lock()

	if raw, ok := blob["client"].(map[string]any); ok {
		s.Client = entity.NewClient(raw)
		s.Client.FromDB, _ = blob["clientFromDb"].(bool)
	}

	if raw, ok := blob["booking"].(map[string]any); ok {
		s.Booking = entity.NewBooking(raw)
	}

	if raw, ok := blob["settings"].(map[string]any); ok {
		s.Settings = entity.NewSettings(raw)
	}

	if rawList, ok := blob["clients"].([]any); ok {
		s.Clients = s.Clients[:0]

		for _, item := range rawList {
			if raw, ok := item.(map[string]any); ok {
				s.Clients = append(s.Clients, entity.NewClient(raw))
			}
		}
	}

	if status, ok := blob["status"].(string); ok && status != "" {
		s.Status = status
	}

	clientID := s.Client.ID
	s.mu.Unlock()

	if clientID == "" {
		return nil
	}

	return s.refreshFromStore(ctx, clientID)
}

// refreshFromStore replaces the cached record with the stored one. Any store
// failure keeps the cached state; the cache is the fallback, not the error.
func (s *State) refreshFromStore(ctx context.Context, clientID string) error {
	record, err := s.store.Load(ctx, clientID)
	if err != nil {
		if failure.IsServerNotRunning(err) {
			log.Warn().Msg("record store offline, keeping cached state")

			return nil
		}

		log.Warn().Err(err).Msg("record load failed, keeping cached state")

		return nil
	}

	if record == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok := record["client"].(map[string]any); ok {
		s.Client = entity.NewClient(raw)
		s.Client.FromDB = true
	}

	if raw, ok := record["booking"].(map[string]any); ok {
		s.Booking = entity.NewBooking(raw)
	}

	s.Status = constant.StateStatusSaved

	return nil
}

// Save persists the record through the store. With a multi-client list every
// client is saved against the same booking; otherwise the singular client is.
// A stopped persistence server degrades to a local save instead of failing.
func (s *State) Save(ctx context.Context) error {
	s.mu.Lock()
	clients := s.Clients
	if len(clients) == 0 {
		clients = []*entity.Client{s.Client}
	}
	s.mu.Unlock()

	for _, client := range clients {
		if client.IsEmpty() {
			continue
		}

		if err := s.saveOne(ctx, client); err != nil {
			if failure.IsServerNotRunning(err) {
				log.Warn().Msg("record store offline, saving state locally")

				s.mu.Lock()
				s.Status = constant.StateStatusLocal
				s.mu.Unlock()

				return s.SaveLocal(ctx)
			}

			return err
		}
	}

	s.mu.Lock()
	s.Status = constant.StateStatusSaved
	s.mu.Unlock()

	return s.SaveLocal(ctx)
}

func (s *State) saveOne(ctx context.Context, client *entity.Client) error {
	record := map[string]any{"client": client.ToRecord()}

	s.mu.Lock()
	if !s.Booking.IsEmpty() {
		record["booking"] = s.Booking.ToRecord()
	}
	s.mu.Unlock()

	result, err := s.store.Save(ctx, record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if client.ID == "" {
		client.ID = result.ClientID
	}

	client.FromDB = true
	client.ClearDirty()

	if s.Booking.ID == "" {
		s.Booking.ID = result.BookingID
	}

	if s.Booking.ClientID == "" {
		s.Booking.ClientID = result.ClientID
	}

	s.Booking.ClearDirty()

	return nil
}

// SaveLocal writes the state blob to the host cache without touching the
// record store.
func (s *State) SaveLocal(ctx context.Context) error {
	return s.cache.SaveState(ctx, s.Snapshot())
}

// Clear resets every record and drops the cached blob.
func (s *State) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.Client = entity.NewClient(map[string]any{})
	s.Clients = nil
	s.Booking = entity.NewBooking(map[string]any{})
	s.Status = constant.StateStatusLocal
	s.mu.Unlock()

	return s.cache.ClearState(ctx)
}

// LoadSettings refreshes settings from the record store. An offline server
// keeps whatever settings are already loaded.
func (s *State) LoadSettings(ctx context.Context) error {
	record, err := s.store.GetSettings(ctx)
	if err != nil {
		if failure.IsServerNotRunning(err) {
			log.Warn().Msg("record store offline, keeping current settings")

			return nil
		}

		return err
	}

	if record == nil {
		return nil
	}

	s.mu.Lock()
	s.Settings = entity.NewSettings(record)
	s.mu.Unlock()

	return nil
}

// SaveSettings pushes the current settings record to the store.
func (s *State) SaveSettings(ctx context.Context) error {
	s.mu.Lock()
	record := s.Settings.ToRecord()
	s.mu.Unlock()

	if err := s.store.PutSettings(ctx, record); err != nil {
		return err
	}

	s.mu.Lock()
	s.Settings.ClearDirty()
	s.mu.Unlock()

	return nil
}

// SetClients replaces the multi-client list and points the singular client at
// the first entry.
func (s *State) SetClients(clients []*entity.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Clients = clients
	if len(clients) > 0 {
		s.Client = clients[0]
	}
}

// CalculateDuration recomputes the booking's duration from its clocks, then
// reapplies the rate precedence to the total.
func (s *State) CalculateDuration() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Booking.RecomputeDuration()
	s.Booking.RecomputeTotal()
}

// Snapshot returns the state's complete outward shape. The maps are fresh
// copies, so callers can read them without holding or racing the state.
func (s *State) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob := map[string]any{
		"client":       s.Client.ToRecord(),
		"clientFromDb": s.Client.FromDB,
		"booking":      s.Booking.ToRecord(),
		"settings":     s.Settings.ToRecord(),
		"status":       s.Status,
	}

	if len(s.Clients) > 0 {
		list := make([]any, 0, len(s.Clients))
		for _, client := range s.Clients {
			list = append(list, client.ToRecord())
		}

		blob["clients"] = list
	}

	return blob
}
