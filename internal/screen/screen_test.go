package screen

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civitas/civitas-reader/internal/apitest"
	"github.com/civitas/civitas-reader/internal/catalog"
	"github.com/civitas/civitas-reader/internal/layout"
	"github.com/civitas/civitas-reader/internal/model"
	"github.com/civitas/civitas-reader/internal/platform"
	"github.com/civitas/civitas-reader/internal/query"
	"github.com/civitas/civitas-reader/internal/reconcile"
)

// fakeConn is a synchronous connectivity source
type fakeConn struct {
	mu     sync.Mutex
	online bool
	subs   map[int]func(bool)
	next   int
}

func newFakeConn(online bool) *fakeConn {
	return &fakeConn{online: online, subs: make(map[int]func(bool))}
}

func (c *fakeConn) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online
}

func (c *fakeConn) Subscribe(fn func(bool)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.next
	c.next++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *fakeConn) Set(online bool) {
	c.mu.Lock()
	c.online = online
	subs := make([]func(bool), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()
	for _, fn := range subs {
		fn(online)
	}
}

func (c *fakeConn) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// lateConn flips once right after its first read, as a monitor change
// landing while a presenter attaches
type lateConn struct {
	*fakeConn
	once sync.Once
}

func (c *lateConn) Online() bool {
	online := c.fakeConn.Online()
	c.once.Do(func() { c.Set(!online) })
	return online
}

func newFixture(t *testing.T) (*catalog.Client, *apitest.Server) {
	t.Helper()
	api := apitest.New(t)

	h := apitest.Item("h", "Aeneid")
	api.SetHighlight(&h)
	api.SetFeatured(apitest.Item("f1", "Metamorphoses"))
	api.SetLatest(apitest.Item("l1", "Tristia"))
	api.SetPopular(apitest.Item("p1", "Meditations"), apitest.Item("p2", "Letters"))
	api.SetCategories(
		model.Category{ID: "fiction", Label: "Fiction"},
		model.Category{ID: "poetry", Label: "Poetry"},
	)
	api.SetItems(model.AllCategoriesID, apitest.Item("1", "Satyricon"), apitest.Item("a", "Odes"))
	api.SetItems("fiction", apitest.Item("1", "Satyricon"), apitest.Item("2", "Golden Ass"))
	api.SetItems("poetry", apitest.Item("a", "Odes"), apitest.Item("b", "Epodes"), apitest.Item("c", "Georgics"))
	api.SetSearch("odes", apitest.Item("a", "Odes"))

	client := catalog.NewClient(api.URL, catalog.WithHTTPClient(api.Client()))
	t.Cleanup(client.Wait)
	return client, api
}

func resultIDs(items []model.CatalogItem) []model.ID {
	out := make([]model.ID, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestHomeLoad(t *testing.T) {
	client, _ := newFixture(t)
	home := NewHome(client, newFakeConn(true), model.DefaultSectionCap, nil)
	t.Cleanup(home.Close)

	home.Load(context.Background())
	home.Wait()

	p := home.Presentation()
	require.Equal(t, reconcile.KindContent, p.Kind)
	feed := p.State.Result
	assert.True(t, feed.HasHighlight())
	require.Len(t, feed.Sections, 2)
	assert.Equal(t, []model.ID{"a", "b", "c"}, resultIDs(feed.Sections[1].Items))
	assert.Equal(t, model.SortByReleaseDate, home.Query().Sort)
}

func TestHomeOfflineThenReconnect(t *testing.T) {
	client, api := newFixture(t)
	conn := newFakeConn(false)
	home := NewHome(client, conn, 3, nil)
	t.Cleanup(home.Close)

	home.Load(context.Background())
	home.Wait()
	assert.Equal(t, reconcile.KindOffline, home.Presentation().Kind)
	assert.Zero(t, api.Hits(query.PathHighlight))

	conn.Set(true)
	home.Wait()
	assert.Equal(t, 1, api.Hits(query.PathHighlight))
	assert.Equal(t, reconcile.KindContent, home.Presentation().Kind)
}

func TestLibraryLoadAndFilter(t *testing.T) {
	client, api := newFixture(t)
	lib := NewLibrary(client, newFakeConn(true), true, nil)
	t.Cleanup(lib.Close)

	lib.Load(context.Background())
	lib.Wait()

	assert.Equal(t, []model.Category{
		model.AllCategories,
		{ID: "fiction", Label: "Fiction"},
		{ID: "poetry", Label: "Poetry"},
	}, lib.Categories())
	assert.Equal(t, model.Query{Category: model.AllCategoriesID, Sort: model.SortByTitle}, lib.Query())
	assert.Equal(t, []model.ID{"1", "a"}, resultIDs(lib.State().Result))

	require.NoError(t, lib.SelectCategory(context.Background(), "poetry"))
	lib.Wait()
	assert.Equal(t, "poetry", api.LastQuery(query.PathItems).Get(query.ParamCategory))
	assert.Equal(t, "1", api.LastQuery(query.PathItems).Get(query.ParamSort))
	assert.Equal(t, []model.ID{"a", "b", "c"}, resultIDs(lib.State().Result))

	require.NoError(t, lib.SelectSort(context.Background(), "3"))
	lib.Wait()
	assert.Equal(t, model.Query{Category: "poetry", Sort: model.SortByPopularity}, lib.Query())
	assert.Equal(t, "3", api.LastQuery(query.PathItems).Get(query.ParamSort))
	assert.Equal(t, "poetry", api.LastQuery(query.PathItems).Get(query.ParamCategory))
}

func TestLibraryRejectsInvalidSort(t *testing.T) {
	client, api := newFixture(t)
	lib := NewLibrary(client, newFakeConn(true), true, nil)
	t.Cleanup(lib.Close)

	err := lib.SelectSort(context.Background(), "9")
	require.ErrorIs(t, err, query.ErrInvalidSort)
	assert.Equal(t, model.SortByTitle, lib.Query().Sort)
	assert.Zero(t, api.Hits(query.PathItems), "invalid queries never reach the network")
	assert.Equal(t, model.FetchStatusIdle, lib.State().Status)
}

func TestLibraryCategoryOptionsRetry(t *testing.T) {
	client, api := newFixture(t)
	api.Fail(query.PathCategories, http.StatusInternalServerError)

	lib := NewLibrary(client, newFakeConn(true), true, nil)
	t.Cleanup(lib.Close)

	lib.Load(context.Background())
	lib.Wait()
	assert.Equal(t, []model.Category{model.AllCategories}, lib.Categories())
	assert.Equal(t, reconcile.KindContent, lib.Presentation().Kind)

	api.Fail(query.PathCategories, 0)
	lib.Load(context.Background())
	lib.Wait()
	assert.Len(t, lib.Categories(), 3)

	lib.Load(context.Background())
	lib.Wait()
	assert.Equal(t, 2, api.Hits(query.PathCategories), "categories load once after success")
}

func TestLibraryLoadRacingSelection(t *testing.T) {
	client, _ := newFixture(t)
	lib := NewLibrary(client, newFakeConn(true), true, nil)
	t.Cleanup(lib.Close)

	modes := model.SortModes()
	for i := 0; i < 20; i++ {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			lib.Load(context.Background())
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, lib.SelectSort(context.Background(), modes[i%len(modes)].String()))
		}()
		wg.Wait()
		lib.Wait()

		assert.Equal(t, lib.Query(), lib.State().Query, "listing matches the selected query")
	}
}

func TestLibraryPlacement(t *testing.T) {
	client, api := newFixture(t)
	api.SetItems(model.AllCategoriesID,
		apitest.Item("1", "a"), apitest.Item("2", "b"), apitest.Item("3", "c"),
		apitest.Item("4", "d"), apitest.Item("5", "e"), apitest.Item("6", "f"), apitest.Item("7", "g"),
	)
	lib := NewLibrary(client, newFakeConn(true), true, nil)
	t.Cleanup(lib.Close)

	lib.Load(context.Background())
	lib.Wait()

	grid := lib.Placement(400, layout.DefaultBreakpoints())
	assert.Equal(t, 2, grid.Columns)
	assert.Equal(t, 1, grid.Fillers)
	assert.Len(t, grid.Slots, 8)

	assert.Equal(t, ViewList, lib.ToggleView())
	list := lib.Placement(400, layout.DefaultBreakpoints())
	assert.Equal(t, 1, list.Columns)
	assert.Zero(t, list.Fillers)
	assert.Len(t, list.Slots, 7)

	assert.Equal(t, ViewGrid, lib.ToggleView())
}

func TestLibraryOfflineSkipsCategories(t *testing.T) {
	client, api := newFixture(t)
	conn := newFakeConn(false)
	lib := NewLibrary(client, conn, false, nil)
	t.Cleanup(lib.Close)

	lib.Load(context.Background())
	lib.Wait()
	assert.Zero(t, api.Hits(query.PathCategories))
	assert.Zero(t, api.Hits(query.PathItems))
	assert.Equal(t, ViewList, lib.View())
	assert.False(t, lib.LoadCategories(context.Background()))

	conn.Set(true)
	assert.True(t, lib.LoadCategories(context.Background()))
	assert.False(t, lib.LoadCategories(context.Background()), "already loaded")
	assert.Len(t, lib.Categories(), 3)
	lib.Wait()
}

func TestCategoryScreen(t *testing.T) {
	client, api := newFixture(t)
	cat, err := NewCategory(client, newFakeConn(true), model.Category{ID: "fiction", Label: "Fiction"}, nil)
	require.NoError(t, err)
	t.Cleanup(cat.Close)

	cat.Load(context.Background())
	cat.Wait()

	assert.Equal(t, "Fiction", cat.Category().Label)
	assert.Equal(t, "2", api.LastQuery(query.PathItems).Get(query.ParamSort))
	assert.Equal(t, []model.ID{"1", "2"}, resultIDs(cat.State().Result))

	_, err = NewCategory(client, nil, model.Category{ID: "bad\x01id"}, nil)
	assert.ErrorIs(t, err, query.ErrInvalidQuery)
}

func TestSearchScreen(t *testing.T) {
	client, api := newFixture(t)
	search := NewSearch(client, newFakeConn(true), nil)
	t.Cleanup(search.Close)

	search.Load(context.Background())
	search.Wait()
	assert.Equal(t, query.RoutePopular, search.Showing())
	assert.Equal(t, []model.ID{"p1", "p2"}, resultIDs(search.State().Result))

	require.NoError(t, search.SetTerm(context.Background(), "  odes "))
	search.Wait()
	assert.Equal(t, "odes", search.Term())
	assert.Equal(t, query.RouteSearch, search.Showing())
	assert.Equal(t, []model.ID{"a"}, resultIDs(search.State().Result))
	assert.Equal(t, 1, api.Hits(query.PathSearch))

	require.NoError(t, search.SetTerm(context.Background(), "nothing here"))
	search.Wait()
	p := search.Presentation()
	assert.Equal(t, reconcile.KindEmpty, p.Kind)
	assert.Equal(t, model.MessageNoItems, p.MessageKey)

	require.NoError(t, search.SetTerm(context.Background(), ""))
	search.Wait()
	assert.Equal(t, query.RoutePopular, search.Showing())
	assert.Equal(t, 2, api.Hits(query.PathPopular))
}

func TestSearchServerError(t *testing.T) {
	client, api := newFixture(t)
	api.Fail(query.PathSearch, http.StatusInternalServerError)
	search := NewSearch(client, newFakeConn(true), nil)
	t.Cleanup(search.Close)

	require.NoError(t, search.SetTerm(context.Background(), "odes"))
	search.Wait()

	p := search.Presentation()
	assert.Equal(t, reconcile.KindError, p.Kind)
	assert.Equal(t, model.ErrorKindServerError, p.State.Err)
	assert.Equal(t, model.MessageNoItems, p.MessageKey)
}

func TestAttachSeesChangeDuringSeed(t *testing.T) {
	client, _ := newFixture(t)
	conn := &lateConn{fakeConn: newFakeConn(false)}

	search := NewSearch(client, conn, nil)
	t.Cleanup(search.Close)

	assert.True(t, conn.Online())
	assert.True(t, search.Presentation().Online)
}

func TestCloseStopsFollowingConnectivity(t *testing.T) {
	client, _ := newFixture(t)
	conn := newFakeConn(true)
	search := NewSearch(client, conn, nil)
	assert.Equal(t, 1, conn.Subscribers())

	search.Close()
	search.Close()
	assert.Zero(t, conn.Subscribers())
}

func TestPreviewOpen(t *testing.T) {
	client, api := newFixture(t)
	preview := NewPreview(client, api.Client(), nil)

	item := apitest.Item("7", "  De   Rerum Natura ")
	item.Description = "<p>On the nature of things</p><p>Six books &amp; more</p>"
	item.Views = 41
	item.Authors = []model.Author{{ID: "1", Name: "Lucretius"}, {ID: "2", Name: " "}}
	item.Tags = []model.Tag{{ID: "t", Name: "philosophy"}}

	d := preview.Open(item)
	client.Wait()

	assert.Equal(t, "De Rerum Natura", d.Title)
	assert.Equal(t, "On the nature of things\nSix books & more", d.Description)
	assert.Equal(t, []string{"Lucretius"}, d.Authors)
	assert.Equal(t, []string{"philosophy"}, d.Tags)
	assert.Equal(t, int64(41), d.Views)
	assert.True(t, d.CanRead)
	assert.Equal(t, "https://read.example.org/7/mobile", d.Viewer.Fallback)
	assert.Equal(t, []model.ID{"7"}, api.Views())
}

func TestPreviewWithoutContent(t *testing.T) {
	client, _ := newFixture(t)
	preview := NewPreview(client, nil, nil)

	d := preview.Open(model.CatalogItem{ID: "x", Name: "Lost play"})
	assert.False(t, d.CanRead)

	_, err := preview.ViewerURL(context.Background(), d)
	assert.ErrorIs(t, err, platform.ErrNoContent)
}

func TestPreviewViewerURLFallback(t *testing.T) {
	client, api := newFixture(t)
	preview := NewPreview(client, api.Client(), nil)

	item := apitest.Item("9", "Fasti")
	item.URL = api.URL + "/books/9"
	api.Fail("/books/9", http.StatusForbidden)

	d := preview.Open(item)
	got, err := preview.ViewerURL(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, api.URL+"/books/9/mobile", got)
}
