package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/byxorna/cafes/pkg/config"
	"github.com/byxorna/cafes/pkg/db/fs"
	"github.com/byxorna/cafes/pkg/geo"
	"github.com/byxorna/cafes/pkg/types/v1"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bhubaneswar = orb.Point{85.8245, 20.2961}
	nineAM      = func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) }
)

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApplication(t *testing.T) Application {
	t.Helper()
	store, err := fs.NewStore("")
	require.NoError(t, err)

	cfg := config.Default
	cfg.ASCII = true
	a, err := New(context.Background(), &cfg, store, zerolog.Nop(),
		WithLocator(geo.StaticLocator(bhubaneswar)),
		WithClock(nineAM),
	)
	require.NoError(t, err)
	return *a
}

func update(t *testing.T, m Application, msg tea.Msg) Application {
	t.Helper()
	next, _ := m.Update(msg)
	a, ok := next.(Application)
	require.True(t, ok)
	return a
}

// started returns an application that has resolved its location and knows
// its window size.
func started(t *testing.T) Application {
	m := newTestApplication(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	msg := m.locate()()
	m = update(t, m, msg)
	require.Equal(t, modeBrowse, m.mode)
	return m
}

func TestLocatingUntilResolved(t *testing.T) {
	m := newTestApplication(t)
	assert.Equal(t, modeLocating, m.mode)
	assert.Nil(t, m.mapView)
	assert.Contains(t, m.View(), "Finding your location")

	// filter keys are ignored until the map exists
	m = update(t, m, keyPress("w"))
	assert.False(t, m.ctrl.Filter().Amenities.WiFi)
}

func TestLocationResolvedCreatesMap(t *testing.T) {
	m := started(t)

	require.NotNil(t, m.mapView)
	assert.Len(t, m.mapView.Markers(), 7)
	s := m.ctrl.State()
	require.NotNil(t, s.User)
	assert.Equal(t, bhubaneswar, *s.User)
	assert.False(t, s.UserFallback)
	assert.Contains(t, m.View(), "7 cafes found")
	assert.Contains(t, m.View(), "nearest: Brew & Code, 0 m")
}

func TestGeolocationDisabledFallsBack(t *testing.T) {
	store, err := fs.NewStore("")
	require.NoError(t, err)
	cfg := config.Default
	cfg.Geolocation.Enabled = false

	a, err := New(context.Background(), &cfg, store, zerolog.Nop())
	require.NoError(t, err)

	m := update(t, *a, a.locate()())
	s := m.ctrl.State()
	require.NotNil(t, s.User)
	assert.Equal(t, cfg.Center.Point(), *s.User)
	assert.True(t, s.UserFallback)
}

func TestPurposeAndAmenityKeys(t *testing.T) {
	m := started(t)

	// purposes are numbered in configuration order, study is second
	m = update(t, m, keyPress("2"))
	assert.Equal(t, v1.PurposeStudy, m.ctrl.Filter().SelectedPurpose)
	assert.Equal(t, []v1.ID{1, 2, 5}, m.mapView.Markers())
	assert.Contains(t, m.View(), "3 cafes found")
	assert.Contains(t, m.View(), "press r to reset")

	m = update(t, m, keyPress("2"))
	assert.Equal(t, v1.Purpose(""), m.ctrl.Filter().SelectedPurpose)
	assert.Len(t, m.mapView.Markers(), 7)

	m = update(t, m, keyPress("s"))
	assert.True(t, m.ctrl.Filter().Amenities.Sockets)
	assert.Equal(t, []v1.ID{1, 2, 5, 6, 7}, m.mapView.Markers())

	m = update(t, m, keyPress("s"))
	assert.False(t, m.ctrl.Filter().Amenities.Sockets)
	assert.NotContains(t, m.View(), "press r to reset")

	// out of range purpose keys do nothing
	m = update(t, m, keyPress("9"))
	assert.False(t, m.ctrl.ShowReset())
}

func TestSearchAndReset(t *testing.T) {
	m := started(t)

	m = update(t, m, keyPress("/"))
	assert.Equal(t, modeSearch, m.mode)

	for _, r := range "cozy" {
		m = update(t, m, keyPress(string(r)))
	}
	assert.Equal(t, "cozy", m.ctrl.Filter().SearchQuery)
	assert.Equal(t, []v1.ID{6}, m.mapView.Markers())

	// while searching, filter keys are text
	m = update(t, m, keyPress("w"))
	assert.False(t, m.ctrl.Filter().Amenities.WiFi)
	assert.Empty(t, m.mapView.Markers())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeBrowse, m.mode)

	m = update(t, m, keyPress("r"))
	assert.Equal(t, "", m.ctrl.Filter().SearchQuery)
	assert.Equal(t, "", m.search.Value())
	assert.Len(t, m.mapView.Markers(), 7)
}

func TestSuggestionsForEmptySearch(t *testing.T) {
	m := started(t)
	m = update(t, m, keyPress("/"))
	for _, r := range "cozybooks" {
		m = update(t, m, keyPress(string(r)))
	}

	assert.Equal(t, 0, m.ctrl.Result().Count)
	if assert.NotEmpty(t, m.suggestions) {
		assert.Equal(t, "Cozy Corner Books", m.suggestions[0])
	}
	v := m.View()
	assert.Contains(t, v, "0 cafes found")
	assert.Contains(t, v, "Did you mean")
}

func TestPopup(t *testing.T) {
	m := started(t)

	m = update(t, m, cafeChosenMsg{id: 6})
	assert.Equal(t, modePopup, m.mode)
	v := m.View()
	assert.Contains(t, v, "Cozy Corner Books")
	assert.Contains(t, v, "away")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeBrowse, m.mode)

	// cafes outside the current result have no popup
	m = update(t, m, keyPress("2"))
	m = update(t, m, cafeChosenMsg{id: 6})
	assert.Equal(t, modeBrowse, m.mode)
}

func TestSelectionFollowsList(t *testing.T) {
	m := started(t)
	assert.Equal(t, v1.ID(1), m.ctrl.State().Selected)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, v1.ID(2), m.ctrl.State().Selected)
}

func TestMapKeys(t *testing.T) {
	m := started(t)
	zoom := m.mapView.Zoom()

	m = update(t, m, keyPress("+"))
	assert.Equal(t, zoom+1, m.mapView.Zoom())
	m = update(t, m, keyPress("-"))
	assert.Equal(t, zoom, m.mapView.Zoom())

	m = update(t, m, keyPress("z"))
	assert.Greater(t, m.mapView.Zoom(), zoom)
}

func TestQuit(t *testing.T) {
	m := started(t)
	next, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.True(t, strings.HasPrefix(next.View(), "Bye"))
}
