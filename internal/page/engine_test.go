package page_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"leedz/internal/page"
	"leedz/internal/state"
	hostcache_mocks "leedz/internal/store/hostcache/mocks"
	store_mocks "leedz/internal/store/mocks"
	"leedz/shared/failure"
)

type fakeHooks struct {
	mu    sync.Mutex
	calls []string

	identity *page.Identity
	parse    page.ParseResult

	parseStarted chan struct{}
	parseRelease chan struct{}
}

func (f *fakeHooks) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, name)
}

func (f *fakeHooks) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...)
}

func (f *fakeHooks) ClearPageUI() { f.record("clear") }
func (f *fakeHooks) ShowPageUI()  { f.record("show") }
func (f *fakeHooks) ShowSpinner() { f.record("spinner") }
func (f *fakeHooks) HideSpinner() { f.record("hideSpinner") }
func (f *fakeHooks) RenderFromState() {
	f.record("renderFromState")
}

func (f *fakeHooks) RenderFromDB(record map[string]any) {
	f.record("renderFromDB")
}

func (f *fakeHooks) RenderFromParse() {
	f.record("renderFromParse")
}

func (f *fakeHooks) QuickIdentity(ctx context.Context) *page.Identity {
	f.record("quickIdentity")

	return f.identity
}

func (f *fakeHooks) FullParse(ctx context.Context) page.ParseResult {
	f.record("fullParse")

	if f.parseStarted != nil {
		close(f.parseStarted)
		<-f.parseRelease
	}

	return f.parse
}

func newEngine(t *testing.T, hooks *fakeHooks) (*page.Engine, *state.State, *store_mocks.MockStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	recordStore := store_mocks.NewMockStore(ctrl)
	cache := hostcache_mocks.NewMockCache(ctrl)

	cache.EXPECT().LoadState(gomock.Any()).Return(nil, nil).AnyTimes()
	cache.EXPECT().ClearState(gomock.Any()).Return(nil).AnyTimes()

	st := state.New(recordStore, cache)

	return page.NewEngine(st, recordStore, hooks), st, recordStore
}

func TestEngine_FreshStateRendersWithoutParse(t *testing.T) {
	hooks := &fakeHooks{identity: &page.Identity{Name: "Jane Doe", Email: "jane@ex.com"}}
	engine, st, recordStore := newEngine(t, hooks)

	require.NoError(t, st.Client.Set("name", "Jane Doe"))
	require.NoError(t, st.Client.Set("email", "jane@ex.com"))

	recordStore.EXPECT().
		SearchClient(gomock.Any(), "jane@ex.com", "Jane Doe").
		Return(nil, nil)

	engine.OnShow(context.Background())

	calls := hooks.Calls()
	assert.Equal(t, []string{"clear", "spinner", "quickIdentity", "renderFromState", "show", "hideSpinner"}, calls)
}

func TestEngine_FreshStatePrefersDBRecord(t *testing.T) {
	hooks := &fakeHooks{identity: &page.Identity{Name: "Jane Doe", Email: "jane@ex.com"}}
	engine, st, recordStore := newEngine(t, hooks)

	require.NoError(t, st.Client.Set("name", "Jane Doe"))
	require.NoError(t, st.Client.Set("email", "jane@ex.com"))

	recordStore.EXPECT().
		SearchClient(gomock.Any(), "jane@ex.com", "Jane Doe").
		Return(map[string]any{"id": "c-1", "name": "Jane Doe"}, nil)

	engine.OnShow(context.Background())

	assert.Contains(t, hooks.Calls(), "renderFromDB")
	assert.NotContains(t, hooks.Calls(), "fullParse")
}

func TestEngine_StaleStateFallsThroughToPageIdentity(t *testing.T) {
	hooks := &fakeHooks{identity: &page.Identity{Name: "Grace Hopper", Email: "grace@navy.mil"}}
	engine, st, recordStore := newEngine(t, hooks)

	require.NoError(t, st.Client.Set("name", "Jane Doe"))
	require.NoError(t, st.Client.Set("email", "jane@ex.com"))

	recordStore.EXPECT().
		SearchClient(gomock.Any(), "grace@navy.mil", "Grace Hopper").
		Return(map[string]any{"id": "c-2", "name": "Grace Hopper"}, nil)

	engine.OnShow(context.Background())

	assert.Contains(t, hooks.Calls(), "renderFromDB")
	assert.NotContains(t, hooks.Calls(), "renderFromState")
	assert.NotContains(t, hooks.Calls(), "fullParse")
}

func TestEngine_CaseInsensitiveNameContainmentKeepsStateFresh(t *testing.T) {
	hooks := &fakeHooks{identity: &page.Identity{Name: "JANE DOE (Piano)", Email: ""}}
	engine, st, recordStore := newEngine(t, hooks)

	require.NoError(t, st.Client.Set("name", "jane doe"))

	recordStore.EXPECT().
		SearchClient(gomock.Any(), "", "jane doe").
		Return(nil, nil)

	engine.OnShow(context.Background())

	assert.Contains(t, hooks.Calls(), "renderFromState")
	assert.NotContains(t, hooks.Calls(), "fullParse")
}

func TestEngine_EmptyStateParsesAndRenders(t *testing.T) {
	hooks := &fakeHooks{
		parse: page.ParseResult{OK: true, Identity: page.Identity{Name: "Jane Doe", Email: "jane@ex.com"}},
	}
	engine, _, recordStore := newEngine(t, hooks)

	recordStore.EXPECT().
		SearchClient(gomock.Any(), "jane@ex.com", "Jane Doe").
		Return(nil, nil)

	engine.OnShow(context.Background())

	calls := hooks.Calls()
	assert.Equal(t, []string{"clear", "spinner", "quickIdentity", "fullParse", "renderFromParse", "show", "hideSpinner"}, calls)
}

func TestEngine_ParseFailureRendersEmptyState(t *testing.T) {
	hooks := &fakeHooks{parse: page.ParseResult{OK: false}}
	engine, _, _ := newEngine(t, hooks)

	engine.OnShow(context.Background())

	assert.Contains(t, hooks.Calls(), "renderFromState")
}

func TestEngine_StaleStateWithFailedParseRendersBlank(t *testing.T) {
	hooks := &fakeHooks{
		identity: &page.Identity{Name: "Grace Hopper", Email: "grace@navy.mil"},
		parse:    page.ParseResult{OK: false},
	}
	engine, st, recordStore := newEngine(t, hooks)

	require.NoError(t, st.Client.Set("name", "Jane Doe"))
	require.NoError(t, st.Client.Set("email", "jane@ex.com"))

	recordStore.EXPECT().
		SearchClient(gomock.Any(), "grace@navy.mil", "Grace Hopper").
		Return(nil, nil)

	engine.OnShow(context.Background())

	assert.Contains(t, hooks.Calls(), "renderFromState")
	assert.True(t, st.Client.IsEmpty())
	assert.True(t, st.Booking.IsEmpty())
}

func TestEngine_OfflineStoreIsTreatedAsMiss(t *testing.T) {
	hooks := &fakeHooks{identity: &page.Identity{Name: "Jane Doe", Email: "jane@ex.com"}}
	engine, _, recordStore := newEngine(t, hooks)

	recordStore.EXPECT().
		SearchClient(gomock.Any(), "jane@ex.com", "Jane Doe").
		Return(nil, failure.ServerNotRunning)

	hooks.parse = page.ParseResult{OK: false}

	engine.OnShow(context.Background())

	assert.Contains(t, hooks.Calls(), "renderFromState")
}

func TestEngine_ReloadSkipsIdentityStages(t *testing.T) {
	hooks := &fakeHooks{
		identity: &page.Identity{Name: "Jane Doe"},
		parse:    page.ParseResult{OK: true, Identity: page.Identity{Name: "Jane Doe"}},
	}
	engine, st, recordStore := newEngine(t, hooks)

	require.NoError(t, st.Client.Set("name", "Jane Doe"))

	recordStore.EXPECT().
		SearchClient(gomock.Any(), "", "Jane Doe").
		Return(nil, nil)

	engine.Reload(context.Background())

	calls := hooks.Calls()
	assert.NotContains(t, calls, "quickIdentity")
	assert.Contains(t, calls, "fullParse")
	assert.True(t, st.Client.IsEmpty())
}

func TestEngine_SecondShowWhileBusyIsDropped(t *testing.T) {
	hooks := &fakeHooks{
		parse:        page.ParseResult{OK: false},
		parseStarted: make(chan struct{}),
		parseRelease: make(chan struct{}),
	}
	engine, _, _ := newEngine(t, hooks)

	done := make(chan struct{})

	go func() {
		engine.OnShow(context.Background())
		close(done)
	}()

	<-hooks.parseStarted
	engine.OnShow(context.Background())
	close(hooks.parseRelease)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("first show never finished")
	}

	count := 0
	for _, call := range hooks.Calls() {
		if call == "clear" {
			count++
		}
	}

	assert.Equal(t, 1, count)
}
