package state_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"leedz/internal/entity"
	"leedz/internal/state"
	"leedz/internal/store"
	hostcache_mocks "leedz/internal/store/hostcache/mocks"
	store_mocks "leedz/internal/store/mocks"
	"leedz/shared/failure"
)

func newState(t *testing.T) (*state.State, *store_mocks.MockStore, *hostcache_mocks.MockCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	recordStore := store_mocks.NewMockStore(ctrl)
	cache := hostcache_mocks.NewMockCache(ctrl)

	return state.New(recordStore, cache), recordStore, cache
}

func TestState_SaveAssignsIDsAndMarksSaved(t *testing.T) {
	st, recordStore, cache := newState(t)
	ctx := context.Background()

	require.NoError(t, st.Client.Set("name", "Ada Lovelace"))
	require.NoError(t, st.Booking.Set("title", "Engine demo"))

	recordStore.EXPECT().
		Save(ctx, gomock.Any()).
		Return(&store.SaveResult{ClientID: "c-1", BookingID: "b-1"}, nil)
	cache.EXPECT().SaveState(ctx, gomock.Any()).Return(nil)

	require.NoError(t, st.Save(ctx))

	assert.Equal(t, "c-1", st.Client.ID)
	assert.True(t, st.Client.FromDB)
	assert.Equal(t, "b-1", st.Booking.ID)
	assert.Equal(t, "c-1", st.Booking.ClientID)
	assert.Equal(t, "saved", st.Status)
	assert.Empty(t, st.Client.DirtyFields())
}

func TestState_SaveDegradesWhenServerDown(t *testing.T) {
	st, recordStore, cache := newState(t)
	ctx := context.Background()

	require.NoError(t, st.Client.Set("name", "Ada Lovelace"))

	recordStore.EXPECT().Save(ctx, gomock.Any()).Return(nil, failure.ServerNotRunning)
	cache.EXPECT().SaveState(ctx, gomock.Any()).Return(nil)

	require.NoError(t, st.Save(ctx))

	assert.Equal(t, "local", st.Status)
	assert.Empty(t, st.Client.ID)
	assert.False(t, st.Client.FromDB)
}

func TestState_SaveDemotesSavedStateWhenServerGoesDown(t *testing.T) {
	st, recordStore, cache := newState(t)
	ctx := context.Background()

	require.NoError(t, st.Client.Set("name", "Ada Lovelace"))

	recordStore.EXPECT().
		Save(ctx, gomock.Any()).
		Return(&store.SaveResult{ClientID: "c-1"}, nil)
	cache.EXPECT().SaveState(ctx, gomock.Any()).Return(nil)

	require.NoError(t, st.Save(ctx))
	require.Equal(t, "saved", st.Status)

	require.NoError(t, st.Client.Set("name", "Ada King"))

	recordStore.EXPECT().Save(ctx, gomock.Any()).Return(nil, failure.ServerNotRunning)
	cache.EXPECT().
		SaveState(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, blob map[string]any) error {
			assert.Equal(t, "local", blob["status"])
			return nil
		})

	require.NoError(t, st.Save(ctx))

	assert.Equal(t, "local", st.Status)
}

func TestState_SaveSkipsEmptyClients(t *testing.T) {
	st, recordStore, cache := newState(t)
	ctx := context.Background()

	st.SetClients([]*entity.Client{
		entity.NewClient(map[string]any{"name": "Ada", "email": "ada@a.co"}),
		entity.NewClient(map[string]any{}),
		entity.NewClient(map[string]any{"name": "Grace", "email": "grace@g.co"}),
	})

	recordStore.EXPECT().
		Save(ctx, gomock.Any()).
		Return(&store.SaveResult{ClientID: "c-1"}, nil).
		Times(2)
	cache.EXPECT().SaveState(ctx, gomock.Any()).Return(nil)

	require.NoError(t, st.Save(ctx))
	assert.Equal(t, "saved", st.Status)
}

func TestState_LoadRoundTrip(t *testing.T) {
	st, _, cache := newState(t)
	ctx := context.Background()

	require.NoError(t, st.Client.Set("name", "Ada Lovelace"))
	require.NoError(t, st.Client.Set("email", "ada@analytical.org"))
	require.NoError(t, st.Booking.Set("title", "Engine demo"))
	st.Client.FromDB = true

	blob := st.Snapshot()

	restored, _, restoredCache := newState(t)
	restoredCache.EXPECT().LoadState(ctx).Return(blob, nil)
	_ = cache

	require.NoError(t, restored.Load(ctx))

	assert.Equal(t, "Ada Lovelace", restored.Client.Name)
	assert.Equal(t, "ada@analytical.org", restored.Client.Email)
	assert.True(t, restored.Client.FromDB)
	assert.Equal(t, "Engine demo", restored.Booking.Title)
}

func TestState_LoadPrefersStoredRecord(t *testing.T) {
	st, recordStore, cache := newState(t)
	ctx := context.Background()

	blob := map[string]any{
		"client": map[string]any{"id": "c-1", "name": "Ada Lovelace"},
		"status": "saved",
	}

	cache.EXPECT().LoadState(ctx).Return(blob, nil)
	recordStore.EXPECT().
		Load(ctx, "c-1").
		Return(map[string]any{
			"client":  map[string]any{"id": "c-1", "name": "Ada King", "email": "ada@analytical.org"},
			"booking": map[string]any{"id": "b-1", "title": "Engine demo"},
		}, nil)

	require.NoError(t, st.Load(ctx))

	assert.Equal(t, "Ada King", st.Client.Name)
	assert.Equal(t, "ada@analytical.org", st.Client.Email)
	assert.True(t, st.Client.FromDB)
	assert.Equal(t, "Engine demo", st.Booking.Title)
	assert.Equal(t, "saved", st.Status)
}

func TestState_LoadKeepsCacheWhenServerDown(t *testing.T) {
	st, recordStore, cache := newState(t)
	ctx := context.Background()

	blob := map[string]any{
		"client": map[string]any{"id": "c-1", "name": "Ada Lovelace"},
		"status": "local",
	}

	cache.EXPECT().LoadState(ctx).Return(blob, nil)
	recordStore.EXPECT().Load(ctx, "c-1").Return(nil, failure.ServerNotRunning)

	require.NoError(t, st.Load(ctx))

	assert.Equal(t, "Ada Lovelace", st.Client.Name)
	assert.Equal(t, "local", st.Status)
}

func TestState_LoadKeepsCacheWhenRecordMissing(t *testing.T) {
	st, recordStore, cache := newState(t)
	ctx := context.Background()

	blob := map[string]any{
		"client": map[string]any{"id": "c-1", "name": "Ada Lovelace"},
	}

	cache.EXPECT().LoadState(ctx).Return(blob, nil)
	recordStore.EXPECT().Load(ctx, "c-1").Return(nil, nil)

	require.NoError(t, st.Load(ctx))

	assert.Equal(t, "Ada Lovelace", st.Client.Name)
}

func TestState_LoadEmptyCacheKeepsState(t *testing.T) {
	st, _, cache := newState(t)
	ctx := context.Background()

	require.NoError(t, st.Client.Set("name", "Ada"))

	cache.EXPECT().LoadState(ctx).Return(nil, nil)

	require.NoError(t, st.Load(ctx))
	assert.Equal(t, "Ada", st.Client.Name)
}

func TestState_ClearResetsEverything(t *testing.T) {
	st, _, cache := newState(t)
	ctx := context.Background()

	require.NoError(t, st.Client.Set("name", "Ada"))
	st.SetClients([]*entity.Client{st.Client})
	st.Status = "saved"

	cache.EXPECT().ClearState(ctx).Return(nil)

	require.NoError(t, st.Clear(ctx))

	assert.True(t, st.Client.IsEmpty())
	assert.Nil(t, st.Clients)
	assert.True(t, st.Booking.IsEmpty())
	assert.Equal(t, "local", st.Status)
}

func TestState_LoadSettingsOfflineKeepsCurrent(t *testing.T) {
	st, recordStore, _ := newState(t)
	ctx := context.Background()

	st.Settings.Set("companyName", "Drum Lessons LLC")

	recordStore.EXPECT().GetSettings(ctx).Return(nil, failure.ServerNotRunning)

	require.NoError(t, st.LoadSettings(ctx))
	assert.Equal(t, "Drum Lessons LLC", st.Settings.CompanyName)
}

func TestState_CalculateDuration(t *testing.T) {
	st, _, _ := newState(t)

	st.Booking.StartTime = "14:00"
	st.Booking.EndTime = "17:00"
	st.Booking.HourlyRate = 100

	st.CalculateDuration()

	assert.InDelta(t, 3, st.Booking.Duration, 0.001)
	assert.InDelta(t, 300, st.Booking.TotalAmount, 0.001)
}

func TestState_SnapshotIsACopy(t *testing.T) {
	st, _, _ := newState(t)

	require.NoError(t, st.Client.Set("name", "Ada"))

	blob := st.Snapshot()
	blob["client"].(map[string]any)["name"] = "mutated"

	assert.Equal(t, "Ada", st.Client.Name)
}
