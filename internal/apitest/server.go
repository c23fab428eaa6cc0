package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/civitas/civitas-reader/internal/model"
)

// Server is a fake catalog API. Fixture fields may be edited between requests
// through the setters; all access is serialized.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	items      map[model.ID][]model.CatalogItem
	highlight  *model.CatalogItem
	featured   []model.CatalogItem
	latest     []model.CatalogItem
	popular    []model.CatalogItem
	search     map[string][]model.CatalogItem
	categories []model.Category
	failures   map[string]int
	raw        map[string]string
	gates      map[string]chan struct{}
	hits       map[string]int
	queries    map[string]url.Values
	views      []model.ID
}

// New starts a fake API and stops it when the test ends
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		items:    make(map[model.ID][]model.CatalogItem),
		search:   make(map[string][]model.CatalogItem),
		failures: make(map[string]int),
		raw:      make(map[string]string),
		gates:    make(map[string]chan struct{}),
		hits:     make(map[string]int),
		queries:  make(map[string]url.Values),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.track)

	r.Head("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/items/{page}", s.handleItems)
	r.Get("/item-highlight/{page}", s.handleHighlight)
	r.Get("/items-featured/{page}", s.listHandler(func() []model.CatalogItem { return s.featured }))
	r.Get("/items-latest/{page}", s.listHandler(func() []model.CatalogItem { return s.latest }))
	r.Get("/items-popular/{page}", s.listHandler(func() []model.CatalogItem { return s.popular }))
	r.Get("/items-search/{page}", s.handleSearch)
	r.Get("/item-categories", s.handleCategories)
	r.Post("/view-add", s.handleViewAdd)
	return r
}

// track counts hits, records query values and applies failures, raw bodies
// and gates configured for the request path.
func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		s.mu.Lock()
		s.hits[path]++
		s.queries[path] = r.URL.Query()
		status := s.failures[path]
		raw, hasRaw := s.raw[path]
		gate := s.gates[path]
		s.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		if hasRaw {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(raw))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	category := model.ID(r.URL.Query().Get("category"))
	if category == "" {
		category = model.AllCategoriesID
	}
	s.mu.Lock()
	items := s.items[category]
	s.mu.Unlock()
	writeJSON(w, map[string]any{"items": nonNil(items)})
}

func (s *Server) handleHighlight(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	item := s.highlight
	s.mu.Unlock()
	writeJSON(w, map[string]any{"item": item})
}

func (s *Server) listHandler(get func() []model.CatalogItem) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		items := get()
		s.mu.Unlock()
		writeJSON(w, map[string]any{"items": nonNil(items)})
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	term := strings.ToLower(r.URL.Query().Get("search"))
	s.mu.Lock()
	items := s.search[term]
	s.mu.Unlock()
	writeJSON(w, map[string]any{"items": nonNil(items)})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	categories := s.categories
	s.mu.Unlock()
	if categories == nil {
		categories = []model.Category{}
	}
	writeJSON(w, map[string]any{"categories": categories})
}

func (s *Server) handleViewAdd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID model.ID `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ItemID == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.views = append(s.views, body.ItemID)
	s.mu.Unlock()
	writeJSON(w, map[string]any{"ok": true})
}

// SetItems sets the items listed for a category
func (s *Server) SetItems(category model.ID, items ...model.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[category] = items
}

// SetHighlight sets the highlighted item; nil serves a null item
func (s *Server) SetHighlight(item *model.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlight = item
}

// SetFeatured sets the featured listing
func (s *Server) SetFeatured(items ...model.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.featured = items
}

// SetLatest sets the latest listing
func (s *Server) SetLatest(items ...model.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = items
}

// SetPopular sets the popular listing
func (s *Server) SetPopular(items ...model.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.popular = items
}

// SetSearch sets the results for a search term (matched case-insensitively)
func (s *Server) SetSearch(term string, items ...model.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search[strings.ToLower(term)] = items
}

// SetCategories sets the category list
func (s *Server) SetCategories(categories ...model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
}

// Fail makes every request to path answer with status. Zero clears it.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, path)
		return
	}
	s.failures[path] = status
}

// SetRaw serves body verbatim for path
func (s *Server) SetRaw(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw[path] = body
}

// Gate holds requests to path until the returned function is called
func (s *Server) Gate(path string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.gates[path] = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, path)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Hits returns how many requests reached path
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// LastQuery returns the query values of the last request to path
func (s *Server) LastQuery(path string) url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[path]
}

// Views returns the item ids recorded through /view-add
func (s *Server) Views() []model.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ID(nil), s.views...)
}

// Item returns a catalog item fixture
func Item(id, name string) model.CatalogItem {
	return model.CatalogItem{
		ID:    model.ID(id),
		Name:  name,
		Cover: "https://covers.example.org/" + id + ".jpg",
		URL:   "https://read.example.org/" + id,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func nonNil(items []model.CatalogItem) []model.CatalogItem {
	if items == nil {
		return []model.CatalogItem{}
	}
	return items
}
