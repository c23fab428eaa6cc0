package ui

import (
	"errors"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/civitas/civitas-reader/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	apiURLEntry    *widget.Entry
	mediumEntry    *widget.Entry
	wideEntry      *widget.Entry
	timeoutEntry   *widget.Entry
	probeEntry     *widget.Entry
	sectionEntry   *widget.Entry
	gridCheck      *widget.Check
	languageSelect *widget.Select
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// values were stored.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.apiURLEntry = widget.NewEntry()
	sd.apiURLEntry.SetPlaceHolder(config.DefaultAPIBaseURL)

	sd.mediumEntry = numberEntry(t(KeyInvalidNumber))
	sd.wideEntry = numberEntry(t(KeyInvalidNumber))
	sd.timeoutEntry = numberEntry(t(KeyInvalidNumber))
	sd.probeEntry = numberEntry(t(KeyInvalidNumber))
	sd.sectionEntry = numberEntry(t(KeyInvalidNumber))

	sd.gridCheck = widget.NewCheck(t(KeyGridDefault), nil)

	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = t(KeyLanguage)

	form := container.NewVBox(
		widget.NewLabel(t(KeyAPIBaseURL)+":"),
		sd.apiURLEntry,
		widget.NewLabel(t(KeyRequestTimeout)+":"),
		sd.timeoutEntry,
		widget.NewLabel(t(KeyProbeInterval)+":"),
		sd.probeEntry,

		widget.NewSeparator(),

		widget.NewLabel(t(KeyBreakpointMedium)+":"),
		sd.mediumEntry,
		widget.NewLabel(t(KeyBreakpointWide)+":"),
		sd.wideEntry,
		widget.NewLabel(t(KeySectionCap)+":"),
		sd.sectionEntry,
		sd.gridCheck,

		widget.NewSeparator(),

		widget.NewLabel(t(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 520))
}

func numberEntry(hint string) *widget.Entry {
	e := widget.NewEntry()
	e.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
			return errors.New(hint)
		}
		return nil
	}
	return e
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	bp := sd.settings.GetBreakpoints()
	sd.apiURLEntry.SetText(sd.settings.GetAPIBaseURL())
	sd.mediumEntry.SetText(strconv.Itoa(int(bp.Medium)))
	sd.wideEntry.SetText(strconv.Itoa(int(bp.Wide)))
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetRequestTimeout().Seconds())))
	sd.probeEntry.SetText(strconv.Itoa(int(sd.settings.GetProbeInterval().Seconds())))
	sd.sectionEntry.SetText(strconv.Itoa(sd.settings.GetSectionCap()))
	sd.gridCheck.SetChecked(sd.settings.GetGridView())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.Apply()

	dialog.ShowInformation(sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySettingsSaved)+"\n"+sd.localization.GetText(KeyRestartRequired), sd.window)
	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// Apply stores the entered values. Blank and non-numeric fields keep the
// stored value.
func (sd *SettingsDialog) Apply() {
	if base := strings.TrimSpace(sd.apiURLEntry.Text); base != "" {
		sd.settings.SetAPIBaseURL(base)
	}

	bp := sd.settings.GetBreakpoints()
	if v, ok := atoi(sd.mediumEntry.Text); ok {
		bp.Medium = float32(v)
	}
	if v, ok := atoi(sd.wideEntry.Text); ok {
		bp.Wide = float32(v)
	}
	sd.settings.SetBreakpoints(bp)

	if v, ok := atoi(sd.timeoutEntry.Text); ok {
		sd.settings.SetRequestTimeout(v)
	}
	if v, ok := atoi(sd.probeEntry.Text); ok {
		sd.settings.SetProbeInterval(v)
	}
	if v, ok := atoi(sd.sectionEntry.Text); ok {
		sd.settings.SetSectionCap(v)
	}
	sd.settings.SetGridView(sd.gridCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}
}

func atoi(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	return v, err == nil
}
