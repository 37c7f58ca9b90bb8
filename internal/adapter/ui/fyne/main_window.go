package fyne

import (
	"fmt"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/mohamadomran/Oul/internal/catalog"
	"github.com/mohamadomran/Oul/internal/domain"
)

const (
	appTitle     = "Oul"
	windowWidth  = 420
	windowHeight = 640

	// phraseGridColumns is the button grid width per category tab
	phraseGridColumns = 2
)

// categoryTitles maps categories to their tab captions.
var categoryTitles = map[domain.Category]string{
	domain.CategoryBasicNeeds:   "احتياجات",
	domain.CategoryPain:         "ألم",
	domain.CategoryEmotions:     "مشاعر",
	domain.CategoryConversation: "محادثة",
	domain.CategoryFamily:       "عائلة",
}

// MainWindow is the application window implementing UIView.
//
// It renders one tab per category plus a favorites tab, a status line showing
// the playing phrase, and a stop button. All user interactions are forwarded
// to the presenter.
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window

	catalog *catalog.Catalog

	statusLabel  *widget.Label
	stopButton   *widget.Button
	tabs         *container.AppTabs
	favoritesBox *fyneapp.Container

	mu              sync.Mutex
	favoriteButtons map[string]*widget.Button

	closeOnce sync.Once
	presenter *Presenter
}

// NewMainWindow creates the window. SetPresenter must be called before
// ShowAndRun.
func NewMainWindow(app fyneapp.App, cat *catalog.Catalog) *MainWindow {
	w := &MainWindow{
		app:             app,
		catalog:         cat,
		favoriteButtons: make(map[string]*widget.Button),
	}

	w.window = app.NewWindow(appTitle)
	w.window.Resize(fyneapp.NewSize(windowWidth, windowHeight))
	return w
}

// SetPresenter wires the presenter and builds the UI.
func (w *MainWindow) SetPresenter(p *Presenter) {
	w.presenter = p
	w.buildUI()
}

func (w *MainWindow) buildUI() {
	w.statusLabel = widget.NewLabel("")
	w.stopButton = widget.NewButton("إيقاف", func() {
		w.presenter.StopTapped()
	})
	w.stopButton.Disable()

	items := make([]*container.TabItem, 0, len(domain.Categories())+1)
	for _, category := range domain.Categories() {
		items = append(items, container.NewTabItem(categoryTitles[category], w.buildCategoryGrid(category)))
	}

	w.favoritesBox = container.NewVBox()
	items = append(items, container.NewTabItem("المفضلة", container.NewVScroll(w.favoritesBox)))

	w.tabs = container.NewAppTabs(items...)
	w.tabs.OnSelected = func(item *container.TabItem) {
		for i, category := range domain.Categories() {
			if w.tabs.Items[i] == item {
				w.presenter.CategoryOpened(category)
				return
			}
		}
	}

	bottom := container.NewBorder(nil, nil, nil, w.stopButton, w.statusLabel)
	w.window.SetContent(container.NewBorder(nil, bottom, nil, nil, w.tabs))

	// Build-time population runs on the startup goroutine, before the event
	// loop exists, so it must not go through fyne.Do.
	w.populateFavorites(w.presenter.favorites.Refs())
}

// buildCategoryGrid builds the phrase button grid for one category tab.
func (w *MainWindow) buildCategoryGrid(category domain.Category) fyneapp.CanvasObject {
	phrases := w.catalog.PhrasesByCategory(category)
	objects := make([]fyneapp.CanvasObject, 0, len(phrases))

	for _, phrase := range phrases {
		phrase := phrase

		play := widget.NewButton(phraseCaption(phrase), func() {
			w.presenter.PhraseTapped(category, phrase.ID)
		})

		favorite := widget.NewButton(favoriteCaption(w.presenter.IsFavorite(category, phrase.ID)), func() {
			w.presenter.FavoriteTapped(category, phrase.ID)
		})

		w.mu.Lock()
		w.favoriteButtons[favoriteKey(category, phrase.ID)] = favorite
		w.mu.Unlock()

		objects = append(objects, container.NewBorder(nil, nil, nil, favorite, play))
	}

	return container.NewVScroll(container.NewGridWithColumns(phraseGridColumns, objects...))
}

func phraseCaption(phrase domain.Phrase) string {
	icon := phrase.Icon.Glyph
	if icon == "" {
		icon = phrase.Icon.Fallback
	}
	if icon == "" {
		return phrase.ArabicText
	}
	return icon + " " + phrase.ArabicText
}

func favoriteCaption(favorite bool) string {
	if favorite {
		return "★"
	}
	return "☆"
}

func favoriteKey(category domain.Category, phraseID string) string {
	return string(category) + "/" + phraseID
}

// SetPlayState implements UIView.
func (w *MainWindow) SetPlayState(playing bool, phraseLabel string) {
	fyneapp.Do(func() {
		if playing {
			w.statusLabel.SetText(fmt.Sprintf("يتم التشغيل: %s", phraseLabel))
			w.stopButton.Enable()
		} else {
			w.statusLabel.SetText("")
			w.stopButton.Disable()
		}
	})
}

// SetFavoriteState implements UIView.
func (w *MainWindow) SetFavoriteState(category domain.Category, phraseID string, favorite bool) {
	w.mu.Lock()
	button := w.favoriteButtons[favoriteKey(category, phraseID)]
	w.mu.Unlock()

	if button != nil {
		fyneapp.Do(func() {
			button.SetText(favoriteCaption(favorite))
		})
	}
}

// RefreshFavorites implements UIView.
func (w *MainWindow) RefreshFavorites(refs []domain.FavoriteRef) {
	fyneapp.Do(func() {
		w.populateFavorites(refs)
	})
}

func (w *MainWindow) populateFavorites(refs []domain.FavoriteRef) {
	w.favoritesBox.RemoveAll()
	for _, ref := range refs {
		ref := ref
		phrase, ok := w.catalog.Phrase(ref.Category, ref.PhraseID)
		if !ok {
			continue
		}
		play := widget.NewButton(phraseCaption(phrase), func() {
			w.presenter.PhraseTapped(ref.Category, ref.PhraseID)
		})
		shareButton := widget.NewButton("مشاركة", func() {
			w.presenter.ShareTapped(ref.Category, ref.PhraseID)
		})
		w.favoritesBox.Add(container.NewBorder(nil, nil, nil, shareButton, play))
	}
	w.favoritesBox.Refresh()
}

// ShowError implements UIView.
func (w *MainWindow) ShowError(message string) {
	fyneapp.Do(func() {
		w.statusLabel.SetText(message)
	})
}

// SetOnBeforeClose registers a callback invoked before the window closes.
func (w *MainWindow) SetOnBeforeClose(callback func()) {
	w.window.SetCloseIntercept(func() {
		w.closeOnce.Do(callback)
		w.window.Close()
	})
}

// ShowAndRun shows the window and blocks until it closes.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window programmatically.
func (w *MainWindow) Close() {
	w.window.Close()
}
