package ui

import (
	"context"
	"net/http"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/civitas/civitas-reader/internal/catalog"
	"github.com/civitas/civitas-reader/internal/config"
	"github.com/civitas/civitas-reader/internal/connectivity"
	"github.com/civitas/civitas-reader/internal/logging"
	"github.com/civitas/civitas-reader/internal/model"
	"github.com/civitas/civitas-reader/internal/platform"
	"github.com/civitas/civitas-reader/internal/query"
	"github.com/civitas/civitas-reader/internal/reconcile"
	"github.com/civitas/civitas-reader/internal/screen"
)

// Tab indexes of the main tabs
const (
	TabHome = iota
	TabLibrary
)

// Services are the collaborators the UI is built on
type Services struct {
	Fetcher    catalog.Fetcher
	Monitor    *connectivity.Monitor
	Settings   *config.Settings
	HTTPClient *http.Client // used for covers and viewer checks
	Logger     *zap.Logger
}

// page is a screen pushed over the tabs
type page struct {
	search  bool
	content fyne.CanvasObject
	refresh func()
	close   func()
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	fetcher      catalog.Fetcher
	monitor      *connectivity.Monitor
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI
	covers       *CoverLoader
	logger       *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	home    *screen.Home
	library *screen.Library
	search  *screen.Search
	preview *screen.Preview

	homeView    *HomeView
	libraryView *ListingView
	searchView  *ListingView

	online      binding.Bool
	unsubscribe []func()

	// UI components
	searchEntry    *widget.Entry
	searchTimer    *time.Timer
	offlineBanner  *fyne.Container
	offlineLabel   *widget.Label
	tabs           *container.AppTabs
	center         *fyne.Container
	pages          []page
	categorySelect *widget.Select
	sortSelect     *widget.Select
	viewToggle     *widget.Button
	searchHeader   *widget.Label
	categories     []model.Category
}

// NewRootUI creates and initializes the main UI. Call Start to load the
// screens and Close when the window goes away.
func NewRootUI(window fyne.Window, app fyne.App, svc Services) *RootUI {
	logger := logging.OrNop(svc.Logger).Named("ui")
	monitor := svc.Monitor
	if monitor == nil {
		monitor = connectivity.NewMonitor(nil, logger)
	}

	localization := NewLocalization()
	localization.SetLanguage(svc.Settings.GetLanguage())

	ctx, cancel := context.WithCancel(context.Background())
	ui := &RootUI{
		window:       window,
		app:          app,
		fetcher:      svc.Fetcher,
		monitor:      monitor,
		settings:     svc.Settings,
		localization: localization,
		mobile:       NewMobileUI(),
		covers:       NewCoverLoader(svc.HTTPClient, logger),
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
		online:       binding.NewBool(),
	}

	ui.home = screen.NewHome(svc.Fetcher, monitor, svc.Settings.GetSectionCap(), logger)
	ui.library = screen.NewLibrary(svc.Fetcher, monitor, svc.Settings.GetGridView(), logger)
	ui.search = screen.NewSearch(svc.Fetcher, monitor, logger)
	ui.preview = screen.NewPreview(svc.Fetcher, svc.HTTPClient, logger)

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	ui.subscribe()
	return ui
}

// Start loads the home feed and the library
func (ui *RootUI) Start() {
	ui.home.Load(ui.ctx)
	ui.loadLibrary()
}

// Close stops all presenters and drops pushed pages
func (ui *RootUI) Close() {
	ui.cancel()
	if ui.searchTimer != nil {
		ui.searchTimer.Stop()
	}
	for len(ui.pages) > 0 {
		ui.popPage()
	}
	for _, fn := range ui.unsubscribe {
		fn()
	}
	ui.unsubscribe = nil
	ui.home.Close()
	ui.library.Close()
	ui.search.Close()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.searchEntry = ui.mobile.CreateMobileEntry(ui.localization.GetText(KeySearchPlaceholder))
	ui.searchEntry.OnSubmitted = ui.onSearch
	ui.searchEntry.OnChanged = ui.onSearchChanged
	searchBtn := widget.NewButtonWithIcon("", theme.SearchIcon(), func() {
		ui.onSearch(ui.searchEntry.Text)
	})

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ViewRefreshIcon(), ui.onRefresh),
		widget.NewToolbarAction(theme.SettingsIcon(), ui.onShowSettings),
	)

	var left fyne.CanvasObject = widget.NewLabel("")
	if logo, err := LoadLogoResource(); err == nil {
		img := canvas.NewImageFromResource(logo)
		img.SetMinSize(fyne.NewSize(32, 32))
		img.FillMode = canvas.ImageFillContain
		left = img
	}
	topPanel := container.NewBorder(nil, nil, left, container.NewHBox(searchBtn, toolbar), ui.searchEntry)

	ui.offlineLabel = widget.NewLabel(ui.localization.GetText(KeyNoInternet))
	ui.offlineLabel.Wrapping = fyne.TextWrapWord
	ui.offlineLabel.Importance = widget.WarningImportance
	ui.offlineBanner = container.NewHBox(widget.NewIcon(theme.WarningIcon()), ui.offlineLabel)
	ui.offlineBanner.Hide()

	ui.homeView = NewHomeView(ui.localization, ui.covers, ui.onOpenItem, ui.onOpenCategory)
	ui.libraryView = NewListingView(ui.localization, ui.covers, ui.settings.GetBreakpoints, ui.onOpenItem)
	ui.libraryView.SetStyle(cardStyle(ui.library.View()))
	ui.searchView = NewListingView(ui.localization, ui.covers, ui.settings.GetBreakpoints, ui.onOpenItem)

	homeTab := container.NewTabItemWithIcon(ui.localization.GetText(KeyHome), theme.HomeIcon(),
		NewPullToRefresh(ui.homeView.Container(), func() { ui.home.Refresh(ui.ctx) }))
	libraryTab := container.NewTabItemWithIcon(ui.localization.GetText(KeyLibrary), theme.StorageIcon(),
		container.NewBorder(ui.libraryControls(), nil, nil, nil,
			NewPullToRefresh(ui.libraryView.Container(), func() { ui.library.Refresh(ui.ctx) })))
	ui.tabs = container.NewAppTabs(homeTab, libraryTab)
	if ui.mobile.IsMobileDevice() {
		ui.tabs.SetTabLocation(container.TabLocationBottom)
	}

	ui.center = container.NewStack(ui.tabs)
	content := container.NewBorder(
		container.NewVBox(topPanel, ui.offlineBanner), // top
		nil, // bottom
		nil, // left
		nil, // right
		ui.center,
	)

	ui.window.SetContent(content)
	ui.logger.Debug("UI setup completed")
}

// libraryControls builds the category, sort and view selectors
func (ui *RootUI) libraryControls() fyne.CanvasObject {
	ui.categories = ui.library.Categories()
	ui.categorySelect = widget.NewSelect(ui.categoryLabels(), nil)
	ui.categorySelect.SetSelectedIndex(0)
	ui.categorySelect.OnChanged = func(string) {
		idx := ui.categorySelect.SelectedIndex()
		if idx < 0 || idx >= len(ui.categories) {
			return
		}
		if err := ui.library.SelectCategory(ui.ctx, ui.categories[idx].ID); err != nil {
			ui.logger.Warn("category rejected", zap.String("kind", query.KindOf(err).String()), zap.Error(err))
		}
	}

	ui.sortSelect = widget.NewSelect(ui.sortLabels(), nil)
	ui.sortSelect.SetSelectedIndex(sortIndex(ui.library.Query().Sort))
	ui.sortSelect.OnChanged = func(string) {
		idx := ui.sortSelect.SelectedIndex()
		modes := model.SortModes()
		if idx < 0 || idx >= len(modes) {
			return
		}
		if err := ui.library.SelectSort(ui.ctx, modes[idx].String()); err != nil {
			ui.logger.Warn("sort rejected", zap.String("kind", query.KindOf(err).String()), zap.Error(err))
		}
	}

	ui.viewToggle = widget.NewButtonWithIcon("", viewIcon(ui.library.View()), ui.onToggleView)
	return container.NewBorder(nil, nil, nil, ui.viewToggle, container.NewGridWithColumns(2, ui.categorySelect, ui.sortSelect))
}

// subscribe connects presenters and connectivity to the views
func (ui *RootUI) subscribe() {
	ui.homeView.Render(ui.home.Presentation())
	ui.libraryView.Render(ui.library.Presentation())
	ui.searchView.Render(ui.search.Presentation())

	ui.unsubscribe = append(ui.unsubscribe,
		ui.home.Subscribe(func(p reconcile.Presentation[model.HomeFeed]) {
			fyne.Do(func() { ui.homeView.Render(p) })
		}),
		ui.library.Subscribe(func(p reconcile.Presentation[[]model.CatalogItem]) {
			fyne.Do(func() { ui.libraryView.Render(p) })
		}),
		ui.search.Subscribe(func(p reconcile.Presentation[[]model.CatalogItem]) {
			fyne.Do(func() {
				ui.searchView.Render(p)
				ui.updateSearchHeader()
			})
		}),
		ui.monitor.Bind(ui.online),
		ui.monitor.Subscribe(func(online bool) {
			if online {
				ui.reloadCategories()
			}
		}),
	)

	listener := binding.NewDataListener(func() {
		online, _ := ui.online.Get()
		fyne.Do(func() { ui.setOfflineBanner(!online) })
	})
	ui.online.AddListener(listener)
	ui.unsubscribe = append(ui.unsubscribe, func() { ui.online.RemoveListener(listener) })
}

func (ui *RootUI) setOfflineBanner(offline bool) {
	if offline {
		ui.offlineBanner.Show()
	} else {
		ui.offlineBanner.Hide()
	}
}

// loadLibrary loads the library categories and listing off the UI goroutine
func (ui *RootUI) loadLibrary() {
	go func() {
		ui.library.Load(ui.ctx)
		fyne.Do(ui.updateCategoryOptions)
	}()
}

// reloadCategories retries the category options after an offline start
func (ui *RootUI) reloadCategories() {
	go func() {
		if ui.library.LoadCategories(ui.ctx) {
			fyne.Do(ui.updateCategoryOptions)
		}
	}()
}

func (ui *RootUI) updateCategoryOptions() {
	current := ui.library.Query().Category
	ui.categories = ui.library.Categories()

	selected := 0
	for i, c := range ui.categories {
		if c.ID == current {
			selected = i
		}
	}

	onChanged := ui.categorySelect.OnChanged
	ui.categorySelect.OnChanged = nil
	ui.categorySelect.SetOptions(ui.categoryLabels())
	ui.categorySelect.SetSelectedIndex(selected)
	ui.categorySelect.OnChanged = onChanged
}

func (ui *RootUI) categoryLabels() []string {
	labels := make([]string, 0, len(ui.categories))
	for _, c := range ui.categories {
		labels = append(labels, ui.localization.CategoryLabel(c))
	}
	return labels
}

func (ui *RootUI) sortLabels() []string {
	modes := model.SortModes()
	labels := make([]string, 0, len(modes))
	for _, sm := range modes {
		labels = append(labels, ui.localization.SortLabel(sm))
	}
	return labels
}

func sortIndex(sm model.SortMode) int {
	for i, mode := range model.SortModes() {
		if mode == sm {
			return i
		}
	}
	return 0
}

func cardStyle(mode screen.ViewMode) CardStyle {
	if mode == screen.ViewList {
		return CardList
	}
	return CardGrid
}

func viewIcon(mode screen.ViewMode) fyne.Resource {
	if mode == screen.ViewGrid {
		return theme.ListIcon()
	}
	return theme.GridIcon()
}

// onToggleView switches the library between grid and list
func (ui *RootUI) onToggleView() {
	mode := ui.library.ToggleView()
	ui.libraryView.SetStyle(cardStyle(mode))
	ui.viewToggle.SetIcon(viewIcon(mode))
}

// onSearch shows results for term, or the popular listing for a blank term
func (ui *RootUI) onSearch(term string) {
	if ui.searchTimer != nil {
		ui.searchTimer.Stop()
	}
	if err := ui.search.SetTerm(ui.ctx, term); err != nil {
		ui.logger.Warn("search rejected", zap.String("kind", query.KindOf(err).String()), zap.Error(err))
		return
	}
	ui.showSearchPage()
}

// onSearchChanged follows the entry as the user types, once typing pauses
// for SearchDebounce
func (ui *RootUI) onSearchChanged(text string) {
	if ui.searchTimer != nil {
		ui.searchTimer.Stop()
	}
	ui.searchTimer = time.AfterFunc(SearchDebounce, func() {
		fyne.Do(func() {
			if ui.ctx.Err() == nil && ui.searchEntry.Text == text {
				ui.onSearch(text)
			}
		})
	})
}

func (ui *RootUI) showSearchPage() {
	for _, p := range ui.pages {
		if p.search {
			return
		}
	}
	ui.searchHeader = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.updateSearchHeader()
	ui.pushPage(ui.searchHeader, page{
		search:  true,
		content: ui.searchView.Container(),
		refresh: func() { ui.search.Refresh(ui.ctx) },
	})
}

func (ui *RootUI) updateSearchHeader() {
	if ui.searchHeader == nil {
		return
	}
	key := KeyResults
	if ui.search.Showing() == query.RoutePopular {
		key = KeyPopular
	}
	ui.searchHeader.SetText(ui.localization.GetText(key))
}

// onOpenCategory pushes the listing of one category
func (ui *RootUI) onOpenCategory(category model.Category) {
	presenter, err := screen.NewCategory(ui.fetcher, ui.monitor, category, ui.logger)
	if err != nil {
		ui.logger.Warn("category screen unavailable", zap.String("category", category.ID.String()), zap.Error(err))
		return
	}

	view := NewListingView(ui.localization, ui.covers, ui.settings.GetBreakpoints, ui.onOpenItem)
	view.Render(presenter.Presentation())
	unsubscribe := presenter.Subscribe(func(p reconcile.Presentation[[]model.CatalogItem]) {
		fyne.Do(func() { view.Render(p) })
	})

	title := widget.NewLabelWithStyle(category.Label, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.pushPage(title, page{
		content: NewPullToRefresh(view.Container(), func() { presenter.Refresh(ui.ctx) }),
		refresh: func() { presenter.Refresh(ui.ctx) },
		close: func() {
			unsubscribe()
			presenter.Close()
		},
	})
	presenter.Load(ui.ctx)
}

// onOpenItem pushes the preview of item
func (ui *RootUI) onOpenItem(item model.CatalogItem) {
	detail := ui.preview.Open(item)
	view := NewPreviewView(detail, ui.localization, ui.covers, ui.mobile.IsLandscape(), ui.onRead)
	title := widget.NewLabelWithStyle(detail.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	title.Truncation = fyne.TextTruncateEllipsis
	ui.pushPage(title, page{content: view.Container()})
}

// onRead resolves the viewer URL off the UI goroutine and opens it
func (ui *RootUI) onRead(d screen.Detail) {
	go func() {
		target, err := ui.preview.ViewerURL(ui.ctx, d)
		fyne.Do(func() {
			if err == nil {
				err = platform.OpenURL(ui.app, target)
			}
			if err != nil {
				ui.logger.Warn("cannot open item", zap.String("item_id", d.Item.ID.String()), zap.Error(err))
				dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), ui.localization.GetText(KeyCannotOpen), ui.window)
			}
		})
	}()
}

// pushPage shows p above the tabs with a back button
func (ui *RootUI) pushPage(title fyne.CanvasObject, p page) {
	back := widget.NewButtonWithIcon(ui.localization.GetText(KeyBack), theme.NavigateBackIcon(), ui.popPage)
	back.Importance = widget.LowImportance
	p.content = container.NewBorder(container.NewBorder(nil, nil, back, nil, title), nil, nil, nil, p.content)

	ui.pages = append(ui.pages, p)
	ui.center.Objects = []fyne.CanvasObject{p.content}
	ui.center.Refresh()
}

// popPage closes the top page and shows the one below it
func (ui *RootUI) popPage() {
	if len(ui.pages) == 0 {
		return
	}
	top := ui.pages[len(ui.pages)-1]
	ui.pages = ui.pages[:len(ui.pages)-1]
	if top.close != nil {
		top.close()
	}

	next := fyne.CanvasObject(ui.tabs)
	if len(ui.pages) > 0 {
		next = ui.pages[len(ui.pages)-1].content
	}
	ui.center.Objects = []fyne.CanvasObject{next}
	ui.center.Refresh()
}

// onRefresh re-fetches whatever is on screen
func (ui *RootUI) onRefresh() {
	if len(ui.pages) > 0 {
		if refresh := ui.pages[len(ui.pages)-1].refresh; refresh != nil {
			refresh()
		}
		return
	}
	switch ui.tabs.SelectedIndex() {
	case TabLibrary:
		ui.library.Refresh(ui.ctx)
		ui.reloadCategories()
	default:
		ui.home.Refresh(ui.ctx)
	}
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	refreshItem := fyne.NewMenuItem(ui.localization.GetText(KeyRefresh), ui.onRefresh)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), refreshItem, settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.searchEntry.SetPlaceHolder(ui.localization.GetText(KeySearchPlaceholder))
	ui.offlineLabel.SetText(ui.localization.GetText(KeyNoInternet))

	ui.tabs.Items[TabHome].Text = ui.localization.GetText(KeyHome)
	ui.tabs.Items[TabLibrary].Text = ui.localization.GetText(KeyLibrary)
	ui.tabs.Refresh()

	ui.updateCategoryOptions()
	onChanged := ui.sortSelect.OnChanged
	ui.sortSelect.OnChanged = nil
	ui.sortSelect.SetOptions(ui.sortLabels())
	ui.sortSelect.SetSelectedIndex(sortIndex(ui.library.Query().Sort))
	ui.sortSelect.OnChanged = onChanged

	ui.homeView.Render(ui.home.Presentation())
	ui.libraryView.Render(ui.library.Presentation())
	ui.searchView.Render(ui.search.Presentation())
	ui.updateSearchHeader()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	}).Show()
}
