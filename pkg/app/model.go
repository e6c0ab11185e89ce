package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/byxorna/cafes/pkg/config"
	"github.com/byxorna/cafes/pkg/filter"
	"github.com/byxorna/cafes/pkg/geo"
	"github.com/byxorna/cafes/pkg/mapview"
	"github.com/byxorna/cafes/pkg/render"
	"github.com/byxorna/cafes/pkg/text"
	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/byxorna/cafes/pkg/ui"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

const (
	searchCharLimit = 64
	suggestionLimit = 3
	// share of the body width given to the results list
	listShare = 0.4
)

type mode int

const (
	modeLocating mode = iota
	modeBrowse
	modeSearch
	modePopup
)

// locationMsg carries the outcome of the startup location lookup.
type locationMsg geo.Resolution

// Application is the bubbletea model. It turns key presses into controller
// events and draws the controller's state; it never edits filter state itself.
type Application struct {
	*config.Config

	ctx     context.Context
	ctrl    *Controller
	locator geo.Locator
	clock   filter.Clock
	log     zerolog.Logger

	keys     applicationKeyMap
	help     help.Model
	mode     mode
	quitting bool

	width, height int

	search  textinput.Model
	loading spinner.Model
	list    list.Model
	popup   viewport.Model

	listWidth, listHeight int
	// mapView is nil until the location lookup has finished
	mapView *mapview.Model

	suggestions []string
}

func (m Application) Init() tea.Cmd {
	return tea.Batch(spinner.Tick, m.locate())
}

func (m Application) locate() tea.Cmd {
	ctx := m.ctx
	l := m.locator
	timeout := m.Geolocation.Timeout
	fallback := m.Center.Point()
	return func() tea.Msg {
		return locationMsg(geo.Resolve(ctx, l, timeout, fallback))
	}
}

func (m Application) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if m.mode != modeLocating {
			return m, nil
		}
		sp, cmd := m.loading.Update(msg)
		m.loading = sp
		return m, cmd

	case locationMsg:
		m.locationResolved(geo.Resolution(msg))
		return m, nil

	case cafeChosenMsg:
		m.openPopup(msg.id)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case modeLocating:
			if key.Matches(msg, m.keys.Quit) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case modeSearch:
			return m.updateSearch(msg)

		case modePopup:
			switch {
			case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open):
				m.mode = modeBrowse
				return m, nil
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			}
			vp, cmd := m.popup.Update(msg)
			m.popup = vp
			return m, cmd
		}

		if cmd, handled := m.updateBrowse(msg); handled {
			return m, cmd
		}
	}

	switch m.mode {
	case modeLocating:
		return m, nil
	case modeSearch:
		// cursor blinks
		ti, cmd := m.search.Update(msg)
		m.search = ti
		return m, cmd
	}

	newlist, cmd := m.list.Update(msg)
	m.list = newlist
	cmds = append(cmds, cmd)
	m.syncSelection()

	return m, tea.Batch(cmds...)
}

// updateBrowse handles the filter and map keys. Anything it does not claim is
// passed on to the results list.
func (m *Application) updateBrowse(msg tea.KeyMsg) (tea.Cmd, bool) {
	current := m.ctrl.Filter()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.Focus()
		return textinput.Blink, true

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return nil, true

	case key.Matches(msg, m.keys.Purpose):
		i := int(msg.String()[0] - '1')
		if i < 0 || i >= len(m.Purposes) {
			return nil, true
		}
		m.dispatch(PurposeClicked{Purpose: m.Purposes[i]})
		return nil, true

	case key.Matches(msg, m.keys.WiFi):
		m.dispatch(ToggleChanged{Kind: filter.AmenityWiFi, Value: !current.Amenities.WiFi})
		return nil, true

	case key.Matches(msg, m.keys.AC):
		m.dispatch(ToggleChanged{Kind: filter.AmenityAC, Value: !current.Amenities.AC})
		return nil, true

	case key.Matches(msg, m.keys.Sockets):
		m.dispatch(ToggleChanged{Kind: filter.AmenitySockets, Value: !current.Amenities.Sockets})
		return nil, true

	case key.Matches(msg, m.keys.Reset):
		if !m.ctrl.ShowReset() {
			return nil, true
		}
		m.search.Reset()
		m.dispatch(ResetClicked{})
		return nil, true

	case key.Matches(msg, m.keys.Fit):
		if b, ok := geo.BoundOf(m.ctrl.Result().Cafes); ok {
			m.mapView.Fit(b)
		}
		return nil, true

	case key.Matches(msg, m.keys.ZoomIn):
		m.mapView.ZoomIn()
		return nil, true

	case key.Matches(msg, m.keys.ZoomOut):
		m.mapView.ZoomOut()
		return nil, true
	}

	return nil, false
}

func (m Application) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open):
		m.search.Blur()
		m.mode = modeBrowse
		return m, nil
	}

	before := m.search.Value()
	ti, cmd := m.search.Update(msg)
	m.search = ti
	if after := m.search.Value(); after != before {
		m.dispatch(SearchChanged{Query: after})
	}
	return m, cmd
}

func (m *Application) dispatch(e Event) {
	m.ctrl.Dispatch(e)
	m.refreshResults()
}

func (m *Application) locationResolved(r geo.Resolution) {
	if r.Err != nil {
		m.log.Info().Err(r.Err).Msg("using fallback location")
	}

	m.mapView = mapview.New(r.Point, m.Zoom)
	m.mapView.ASCII = m.ASCII
	m.ctrl.Attach(m.mapView)
	m.ctrl.Dispatch(LocationResolved{Location: r.Point, Fallback: r.Fallback})

	m.mode = modeBrowse
	m.loading.Finish()
	m.refreshResults()
	m.layout()
}

// refreshResults rebuilds the results list from the controller.
func (m *Application) refreshResults() {
	result := m.ctrl.Result()
	m.list = newResultsList(itemsFromCafes(result.Cafes, m.clock()), m.listWidth, m.listHeight)

	m.suggestions = nil
	if q := m.ctrl.Filter().SearchQuery; result.Count == 0 && strings.TrimSpace(q) != "" {
		names := make([]string, len(m.ctrl.Records()))
		for i, c := range m.ctrl.Records() {
			names[i] = c.Name
		}
		m.suggestions = text.Suggest(q, names, suggestionLimit)
	}
	m.syncSelection()
}

// syncSelection highlights the list's current row on the map.
func (m *Application) syncSelection() {
	var id v1.ID
	if it, ok := m.list.SelectedItem().(cafeItem); ok {
		id = it.cafe.ID
	}
	if id != m.ctrl.State().Selected {
		m.ctrl.Dispatch(CafeSelected{ID: id})
	}
}

func (m *Application) openPopup(id v1.ID) {
	var cafe *v1.Cafe
	for _, c := range m.ctrl.Result().Cafes {
		if c.ID == id {
			cafe = c
		}
	}
	if cafe == nil {
		return
	}

	md := render.PopupMarkdown(cafe, m.clock(), m.ctrl.State().User)
	out, err := render.Render(md, m.popup.Width)
	if err != nil {
		m.log.Error().Err(err).Int64("id", int64(id)).Msg("unable to render popup")
		out = md
	}
	m.popup.SetContent(out)
	m.popup.GotoTop()
	m.mode = modePopup
}

// layout hands out the terminal between the header, list, map and footer.
func (m *Application) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	topGap, rightGap, bottomGap, leftGap := appStyle.GetPadding()
	w := m.width - leftGap - rightGap
	h := m.height - topGap - bottomGap - lipgloss.Height(m.headerView()) - lipgloss.Height(m.footerView())
	if h < 1 {
		h = 1
	}

	m.listWidth, m.listHeight = int(float64(w)*listShare), h
	m.list.SetSize(m.listWidth, m.listHeight)
	if m.mapView != nil {
		// the frame takes two rows and two columns, the footer one row
		m.mapView.SetSize(w-m.listWidth-2, h-3)
	}
	m.popup.Width = w
	m.popup.Height = h
	m.search.Width = w - lipgloss.Width(m.search.Prompt) - 1
}

func (m Application) View() string {
	if m.quitting {
		return "Bye!\n"
	}
	if m.mode == modeLocating {
		return appStyle.Render(fmt.Sprintf("%s Finding your location…", m.loading.View()))
	}

	var body string
	if m.mode == modePopup {
		body = m.popup.View()
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.resultsView(), m.mapView.View())
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView()))
}

func (m Application) headerView() string {
	f := m.ctrl.Filter()

	chips := make([]string, 0, len(m.Purposes)+3)
	for i, p := range m.Purposes {
		label := fmt.Sprintf("%d %s", i+1, p)
		if f.SelectedPurpose == p {
			chips = append(chips, ui.ActiveChip(label))
		} else {
			chips = append(chips, ui.Chip(label))
		}
	}
	for _, a := range []struct {
		on    bool
		label string
	}{
		{f.Amenities.WiFi, text.EmojiWiFi + " w"},
		{f.Amenities.AC, text.EmojiAC + " a"},
		{f.Amenities.Sockets, text.EmojiSockets + " s"},
	} {
		if a.on {
			chips = append(chips, ui.ActiveChip(a.label))
		} else {
			chips = append(chips, ui.Chip(a.label))
		}
	}

	title := ui.TitleStyle(fmt.Sprintf("%s cafes", text.EmojiCafe))
	count := ui.CountStyle(m.ctrl.ResultsLabel())
	line := fmt.Sprintf("%s  %s", title, count)
	if m.ctrl.ShowReset() {
		line += "  " + ui.SubtleStyle("press r to reset")
	}
	if s := m.ctrl.State(); s.User != nil {
		if s.UserFallback {
			line += "  " + ui.SubtleStyle("(approximate location)")
		} else if near := geo.Nearest(*s.User, m.ctrl.Result().Cafes); near != nil {
			d := text.Distance(geo.Distance(*s.User, near.Point()))
			line += "  " + ui.SubtleStyle(fmt.Sprintf("nearest: %s, %s", near.Name, d))
		}
	}

	return line + "\n" + strings.Join(chips, " ") + "\n"
}

func (m Application) resultsView() string {
	if m.ctrl.Result().Count > 0 {
		return m.list.View()
	}

	b := strings.Builder{}
	fmt.Fprintf(&b, "%s No cafes match these filters.\n", text.EmojiNotFound)
	if len(m.suggestions) > 0 {
		b.WriteString("\nDid you mean:\n")
		for _, s := range m.suggestions {
			fmt.Fprintf(&b, "  %s\n", s)
		}
	}
	return lipgloss.NewStyle().Width(m.listWidth).Height(m.listHeight).Render(b.String())
}

func (m Application) footerView() string {
	if m.mode == modeSearch || m.search.Value() != "" {
		return m.search.View() + "\n" + m.help.View(m.keys)
	}
	return m.help.View(m.keys)
}
