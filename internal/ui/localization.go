package ui

import (
	"fyne.io/fyne/v2/lang"
	"golang.org/x/text/language"

	"github.com/civitas/civitas-reader/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
	systemLocale    func() string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyHome              = "home"
	KeyLibrary           = "library"
	KeySearchPlaceholder = "search_placeholder"
	KeyNoItemsFound      = model.MessageNoItems
	KeyNoInternet        = model.MessageNoInternet
	KeyRefresh           = "refresh"
	KeyBack              = "back"
	KeyViewMore          = "view_more"
	KeyHighlight         = "highlight"
	KeyFeatured          = "featured"
	KeyLatest            = "latest"
	KeyPopular           = "popular"
	KeyResults           = "results"
	KeyAllCategories     = "all_categories"
	KeySortTitle         = "sort_title"
	KeySortReleaseDate   = "sort_release_date"
	KeySortPopularity    = "sort_popularity"
	KeyGridView          = "grid_view"
	KeyListView          = "list_view"
	KeyRead              = "read"
	KeyAuthors           = "authors"
	KeyTags              = "tags"
	KeyViews             = "views"
	KeyCannotOpen        = "cannot_open"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyAPIBaseURL        = "api_base_url"
	KeyBreakpointMedium  = "breakpoint_medium"
	KeyBreakpointWide    = "breakpoint_wide"
	KeyRequestTimeout    = "request_timeout"
	KeyProbeInterval     = "probe_interval"
	KeySectionCap        = "section_cap"
	KeyGridDefault       = "grid_default"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeySettingsSaved     = "settings_saved"
	KeyRestartRequired   = "restart_required"
	KeyInvalidNumber     = "invalid_number"
)

// languageMatcher maps a system locale onto a supported translation
var languageMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Portuguese,
})

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
		systemLocale:    func() string { return lang.SystemLocale().String() },
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the closest
// translation for the operating system locale.
func (l *Localization) SetLanguage(code string) {
	if code == "system" {
		code = l.matchSystem()
	}

	if _, exists := l.texts[code]; exists {
		l.currentLanguage = code
	}
}

func (l *Localization) matchSystem() string {
	_, idx, conf := languageMatcher.Match(language.Make(l.systemLocale()))
	if conf == language.No || idx == 0 {
		return "en"
	}
	return "pt"
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// SortLabel returns the localized label of a sort mode
func (l *Localization) SortLabel(sm model.SortMode) string {
	switch sm {
	case model.SortByTitle:
		return l.GetText(KeySortTitle)
	case model.SortByReleaseDate:
		return l.GetText(KeySortReleaseDate)
	case model.SortByPopularity:
		return l.GetText(KeySortPopularity)
	default:
		return sm.Label()
	}
}

// CategoryLabel returns the category label, localizing "All Categories"
func (l *Localization) CategoryLabel(c model.Category) string {
	if c.IsAll() {
		return l.GetText(KeyAllCategories)
	}
	return c.Label
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Civitas Reader",
		KeyHome:              "Home",
		KeyLibrary:           "Library",
		KeySearchPlaceholder: "Search the catalog",
		KeyNoItemsFound:      "No items found.",
		KeyNoInternet:        "No internet connection. Results will load when you are back online.",
		KeyRefresh:           "Refresh",
		KeyBack:              "Back",
		KeyViewMore:          "View more",
		KeyHighlight:         "Highlight",
		KeyFeatured:          "Featured",
		KeyLatest:            "Latest",
		KeyPopular:           "Popular",
		KeyResults:           "Results",
		KeyAllCategories:     "All Categories",
		KeySortTitle:         "Sort by Title",
		KeySortReleaseDate:   "Sort by Release Date",
		KeySortPopularity:    "Sort by Popularity",
		KeyGridView:          "Grid",
		KeyListView:          "List",
		KeyRead:              "Read",
		KeyAuthors:           "Authors",
		KeyTags:              "Tags",
		KeyViews:             "views",
		KeyCannotOpen:        "Unable to open this item",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyAPIBaseURL:        "Catalog API URL",
		KeyBreakpointMedium:  "Three-column width",
		KeyBreakpointWide:    "Four-column width",
		KeyRequestTimeout:    "Request timeout (seconds)",
		KeyProbeInterval:     "Connectivity check interval (seconds)",
		KeySectionCap:        "Items per home row",
		KeyGridDefault:       "Start library in grid view",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyRestartRequired:   "Some changes apply after a restart.",
		KeyInvalidNumber:     "Please enter a number",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Civitas Reader",
		KeyHome:              "Início",
		KeyLibrary:           "Biblioteca",
		KeySearchPlaceholder: "Pesquisar no catálogo",
		KeyNoItemsFound:      "Nenhum item encontrado.",
		KeyNoInternet:        "Sem conexão com a internet. Os resultados serão carregados quando você voltar a ficar online.",
		KeyRefresh:           "Atualizar",
		KeyBack:              "Voltar",
		KeyViewMore:          "Ver mais",
		KeyHighlight:         "Destaque",
		KeyFeatured:          "Em destaque",
		KeyLatest:            "Mais recentes",
		KeyPopular:           "Populares",
		KeyResults:           "Resultados",
		KeyAllCategories:     "Todas as categorias",
		KeySortTitle:         "Ordenar por título",
		KeySortReleaseDate:   "Ordenar por data de lançamento",
		KeySortPopularity:    "Ordenar por popularidade",
		KeyGridView:          "Grade",
		KeyListView:          "Lista",
		KeyRead:              "Ler",
		KeyAuthors:           "Autores",
		KeyTags:              "Etiquetas",
		KeyViews:             "visualizações",
		KeyCannotOpen:        "Não foi possível abrir este item",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyAPIBaseURL:        "URL da API do catálogo",
		KeyBreakpointMedium:  "Largura para três colunas",
		KeyBreakpointWide:    "Largura para quatro colunas",
		KeyRequestTimeout:    "Tempo limite de requisição (segundos)",
		KeyProbeInterval:     "Intervalo de verificação de conexão (segundos)",
		KeySectionCap:        "Itens por linha na tela inicial",
		KeyGridDefault:       "Abrir a biblioteca em grade",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyRestartRequired:   "Algumas alterações valem após reiniciar.",
		KeyInvalidNumber:     "Digite um número",
	}
}
