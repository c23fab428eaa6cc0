package ui

import (
	"context"
	"net/http"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/civitas/civitas-reader/internal/apitest"
	"github.com/civitas/civitas-reader/internal/catalog"
	"github.com/civitas/civitas-reader/internal/config"
	"github.com/civitas/civitas-reader/internal/connectivity"
	"github.com/civitas/civitas-reader/internal/model"
	"github.com/civitas/civitas-reader/internal/query"
)

const waitFor = 2 * time.Second

func item(id, name string) model.CatalogItem {
	it := apitest.Item(id, name)
	it.Cover = ""
	return it
}

type rootFixture struct {
	ui     *RootUI
	api    *apitest.Server
	client *catalog.Client
	src    *connectivity.Static
	logs   *observer.ObservedLogs
}

func newRootFixture(t *testing.T) *rootFixture {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	api := apitest.New(t)
	highlight := item("h", "Aeneid")
	api.SetHighlight(&highlight)
	api.SetFeatured(item("f1", "Metamorphoses"))
	api.SetLatest(item("l1", "Tristia"))
	api.SetCategories(model.Category{ID: "fiction", Label: "Fiction"})
	api.SetItems(model.AllCategoriesID,
		item("1", "Satyricon"), item("2", "Golden Ass"), item("3", "Heroides"),
		item("4", "Fasti"), item("5", "Ibis"), item("6", "Amores"), item("7", "Medea"),
	)
	api.SetItems("fiction", item("1", "Satyricon"), item("2", "Golden Ass"))
	api.SetPopular(item("p", "Odyssey"))

	client := catalog.NewClient(api.URL)
	t.Cleanup(client.Wait)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	src := connectivity.NewStatic(true)
	monitor := connectivity.NewMonitor(src, nil)
	monitor.Start(ctx)

	w := test.NewWindow(nil)
	w.Resize(fyne.NewSize(400, 600))
	t.Cleanup(w.Close)

	core, logs := observer.New(zap.InfoLevel)
	ui := NewRootUI(w, app, Services{
		Fetcher:    client,
		Monitor:    monitor,
		Settings:   config.NewSettings(app),
		HTTPClient: http.DefaultClient,
		Logger:     zap.New(core),
	})
	t.Cleanup(ui.Close)

	return &rootFixture{ui: ui, api: api, client: client, src: src, logs: logs}
}

func TestRootUILoadsScreens(t *testing.T) {
	f := newRootFixture(t)
	f.ui.Start()

	assert.Eventually(t, func() bool {
		return f.ui.home.State().Status == model.FetchStatusReady &&
			f.ui.library.State().Status == model.FetchStatusReady
	}, waitFor, 10*time.Millisecond)

	assert.Len(t, f.ui.library.State().Result, 7)
	assert.Eventually(t, func() bool {
		return len(f.ui.categorySelect.Options) == 2
	}, waitFor, 10*time.Millisecond, "category options include the server categories")
	assert.Equal(t, "All Categories", f.ui.categorySelect.Selected)
}

func TestRootUIOpenCategoryPage(t *testing.T) {
	f := newRootFixture(t)

	f.ui.onOpenCategory(model.Category{ID: "fiction", Label: "Fiction"})
	require.Len(t, f.ui.pages, 1)
	assert.Eventually(t, func() bool {
		return f.api.LastQuery(query.PathItems).Get(query.ParamCategory) == "fiction"
	}, waitFor, 10*time.Millisecond)
	assert.Equal(t, model.SortByReleaseDate.String(), f.api.LastQuery(query.PathItems).Get(query.ParamSort))

	f.ui.popPage()
	assert.Empty(t, f.ui.pages)
	assert.Equal(t, []fyne.CanvasObject{f.ui.tabs}, f.ui.center.Objects)
}

func TestRootUISearchPageIsPushedOnce(t *testing.T) {
	f := newRootFixture(t)

	f.ui.onSearch("")
	f.ui.onSearch("  ")
	require.Len(t, f.ui.pages, 1)
	assert.Equal(t, query.RoutePopular, f.ui.search.Showing())

	f.ui.search.Wait()
	assert.Equal(t, "Popular", f.ui.searchHeader.Text)
	assert.Positive(t, f.api.Hits(query.PathPopular))
}

func TestRootUISearchFollowsTyping(t *testing.T) {
	f := newRootFixture(t)
	f.api.SetSearch("odyssey", item("o", "Odyssey"))

	test.Type(f.ui.searchEntry, "odyssey")
	assert.Eventually(t, func() bool {
		return f.api.LastQuery(query.PathSearch).Get(query.ParamSearch) == "odyssey"
	}, waitFor, 10*time.Millisecond)
	assert.Equal(t, "odyssey", f.ui.search.Term())
	assert.Equal(t, query.RouteSearch, f.ui.search.Showing())
	assert.Equal(t, 1, f.api.Hits(query.PathSearch), "one search once typing pauses")

	f.ui.searchEntry.SetText("")
	assert.Eventually(t, func() bool {
		return f.ui.search.Showing() == query.RoutePopular
	}, waitFor, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return f.api.Hits(query.PathPopular) > 0
	}, waitFor, 10*time.Millisecond)
	f.ui.search.Wait()
}

func TestRootUIRejectedSearchLogsKind(t *testing.T) {
	f := newRootFixture(t)

	f.ui.onSearch("odes\x07")
	assert.Empty(t, f.ui.pages)

	entries := f.logs.FilterMessage("search rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, model.ErrorKindInvalidQuery.String(), entries[0].ContextMap()["kind"])
}

func TestRootUIOpenItemRecordsView(t *testing.T) {
	f := newRootFixture(t)

	f.ui.onOpenItem(item("7", "Medea"))
	require.Len(t, f.ui.pages, 1)

	f.client.Wait()
	assert.Equal(t, []model.ID{"7"}, f.api.Views())
}

func TestRootUIOfflineBanner(t *testing.T) {
	f := newRootFixture(t)
	assert.False(t, f.ui.offlineBanner.Visible())

	f.src.Set(false)
	assert.Eventually(t, func() bool {
		return f.ui.offlineBanner.Visible()
	}, waitFor, 10*time.Millisecond)

	f.src.Set(true)
	assert.Eventually(t, func() bool {
		return !f.ui.offlineBanner.Visible()
	}, waitFor, 10*time.Millisecond)
}

func TestRootUIToggleView(t *testing.T) {
	f := newRootFixture(t)
	startGrid := f.ui.library.View()

	f.ui.onToggleView()
	assert.NotEqual(t, startGrid, f.ui.library.View())
	assert.Equal(t, cardStyle(f.ui.library.View()), f.ui.libraryView.style)
}

func TestRootUILanguageChange(t *testing.T) {
	f := newRootFixture(t)

	f.ui.onLanguageChange("pt")
	assert.Equal(t, "Biblioteca", f.ui.tabs.Items[TabLibrary].Text)
	assert.Equal(t, "pt", f.ui.settings.GetLanguage())
	assert.Equal(t, "Ordenar por título", f.ui.sortSelect.Selected)
}
