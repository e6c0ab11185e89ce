package app

import (
	"context"
	"fmt"
	"time"

	"github.com/byxorna/cafes/pkg/config"
	"github.com/byxorna/cafes/pkg/db"
	"github.com/byxorna/cafes/pkg/filter"
	"github.com/byxorna/cafes/pkg/geo"
	"github.com/byxorna/cafes/pkg/ui"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Option tweaks an Application before it starts.
type Option func(*Application)

// WithLocator replaces the locator picked from the configuration.
func WithLocator(l geo.Locator) Option {
	return func(a *Application) { a.locator = l }
}

// WithClock replaces the wall clock used for crowd and opening hours.
func WithClock(c filter.Clock) Option {
	return func(a *Application) { a.clock = c }
}

// New builds the interactive application over the records in backend. The map
// is not created until the location lookup started by Init finishes.
func New(ctx context.Context, cfg *config.Config, backend db.Backend, log zerolog.Logger, opts ...Option) (*Application, error) {
	ctrl, err := NewController(backend, log)
	if err != nil {
		return nil, fmt.Errorf("unable to load cafes from %s: %w", backend.Source(), err)
	}

	sp := spinner.NewModel()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(ui.AccentColor)
	sp.HideFor = time.Millisecond * 100
	sp.MinimumLifetime = time.Millisecond * 180
	sp.Start()

	si := textinput.NewModel()
	si.Prompt = ui.PromptStyle("Find: ")
	si.Placeholder = "name, city or address"
	si.CursorStyle = lipgloss.NewStyle().Foreground(ui.AccentColor)
	si.CharLimit = searchCharLimit

	m := Application{
		Config: cfg,

		ctx:     ctx,
		ctrl:    ctrl,
		locator: locatorFor(cfg),
		clock:   filter.SystemClock,
		log:     log,

		keys:    DefaultKeyMap(),
		help:    help.NewModel(),
		mode:    modeLocating,
		search:  si,
		loading: sp,
		popup:   viewport.Model{},
	}
	for _, o := range opts {
		o(&m)
	}

	m.list = newResultsList(itemsFromCafes(ctrl.Result().Cafes, m.clock()), 0, 0)

	log.Debug().
		Str("source", backend.Source()).
		Int("count", backend.Count()).
		Bool("geolocation", cfg.Geolocation.Enabled).
		Msg("application ready")

	return &m, nil
}

// locatorFor returns nil when geolocation is turned off, which makes the
// lookup resolve straight to the configured center.
func locatorFor(cfg *config.Config) geo.Locator {
	if !cfg.Geolocation.Enabled {
		return nil
	}
	return &geo.IPLocator{Endpoint: cfg.Geolocation.Endpoint}
}

func newResultsList(items []list.Item, width, height int) list.Model {
	delegate := newCafeDelegate(newDelegateKeyMap())

	l := list.NewModel(items, delegate, width, height)
	l.Title = "Results"
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	return l
}
