package ui

import (
	"log"
	"sort"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"SketchBoard/internal/config"
	"SketchBoard/internal/session"
)

// Desk opens one window per board, each backed by its own registered
// session.
type Desk struct {
	app      fyne.App
	registry *session.Registry

	mu       sync.Mutex
	settings *config.Settings
	boards   map[string]*BoardWidget
}

func NewDesk(a fyne.App, reg *session.Registry, settings *config.Settings) *Desk {
	return &Desk{
		app:      a,
		registry: reg,
		settings: settings,
		boards:   make(map[string]*BoardWidget),
	}
}

func sessionOptions(settings *config.Settings) []session.Option {
	return []session.Option{
		session.WithSize(settings.Width, settings.Height),
		session.WithBackground(settings.Background),
		session.WithTool(settings.Tool),
		session.WithStyle(settings.Style),
		session.WithLiveRedraw(settings.LiveRedraw),
	}
}

// OpenBoard creates a session from the current settings and shows it in a
// new window.
func (d *Desk) OpenBoard() (*BoardWidget, error) {
	d.mu.Lock()
	settings := d.settings
	d.mu.Unlock()

	s, err := d.registry.Create(sessionOptions(settings)...)
	if err != nil {
		return nil, err
	}
	board := NewBoardWidget(s, settings)

	win := d.app.NewWindow("SketchBoard")
	win.Resize(fyne.NewSize(1024, 768))
	toolbar := NewToolbar(board, win, d.openFromToolbar)
	win.SetContent(container.NewBorder(toolbar, board.StatusBar(), nil, nil, container.NewScroll(board)))
	win.SetOnClosed(func() {
		d.CloseBoard(s.ID())
	})

	d.mu.Lock()
	d.boards[s.ID()] = board
	d.mu.Unlock()

	log.Printf("[DESK] Opened board %s (%dx%d, tool %s)", s.ID(), settings.Width, settings.Height, settings.Tool)
	win.Show()
	return board, nil
}

func (d *Desk) openFromToolbar() {
	if _, err := d.OpenBoard(); err != nil {
		log.Printf("[DESK] New board failed: %v", err)
		d.SetStatus("New board failed: " + err.Error())
	}
}

// CloseBoard forgets the board and closes its session.
func (d *Desk) CloseBoard(id string) {
	d.mu.Lock()
	delete(d.boards, id)
	d.mu.Unlock()

	if err := d.registry.Close(id); err != nil {
		log.Printf("[DESK] Close %s: %v", id, err)
		return
	}
	log.Printf("[DESK] Closed board %s", id)
}

// Boards returns the open boards ordered by session ID.
func (d *Desk) Boards() []*BoardWidget {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]string, 0, len(d.boards))
	for id := range d.boards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*BoardWidget, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.boards[id])
	}
	return out
}

// ApplySettings hands reloaded settings to every open board. Boards opened
// later start from them.
func (d *Desk) ApplySettings(s *config.Settings) {
	d.mu.Lock()
	d.settings = s
	d.mu.Unlock()

	for _, b := range d.Boards() {
		b.ApplySettings(s)
	}
}

func (d *Desk) SetStatus(text string) {
	for _, b := range d.Boards() {
		b.SetStatus(text)
	}
}

// RunApp opens the first board and blocks until every window is closed.
// started runs once that board exists.
func RunApp(reg *session.Registry, settings *config.Settings, started func(*Desk)) error {
	myApp := app.New()
	desk := NewDesk(myApp, reg, settings)
	if _, err := desk.OpenBoard(); err != nil {
		return err
	}
	if started != nil {
		started(desk)
	}
	myApp.Run()
	return nil
}
