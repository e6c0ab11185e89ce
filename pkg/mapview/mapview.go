package mapview

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/charmbracelet/lipgloss"
	"github.com/enescakir/emoji"
	"github.com/mattn/go-runewidth"
	"github.com/paulmach/orb"
)

const (
	DefaultZoom = 5
	MinZoom     = 3
	MaxZoom     = 19

	// every grid cell is two terminal columns wide so it is roughly square
	cellWidth = 2
)

var (
	ErrNoMarker = fmt.Errorf("no such marker")

	cafeStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6F4E37", Dark: "#C8A27A"})
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94")).Bold(true)
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
	clusterStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#036B46", Dark: "#35D79C"}).Bold(true)
	gridStyle     = lipgloss.NewStyle().Faint(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	frameStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#C2B8C2", Dark: "#4D4D4D"})
)

// Marker is one cafe pin.
type Marker struct {
	ID    v1.ID
	Point orb.Point
	Label string
}

// Model is a character-grid map. It keeps its own marker table and satisfies
// the marker layer the app controller drives.
type Model struct {
	ASCII bool

	width, height int
	center        orb.Point
	zoom          int

	markers  map[v1.ID]Marker
	user     *orb.Point
	selected v1.ID
}

func New(center orb.Point, zoom int) *Model {
	m := &Model{
		center:  center,
		markers: map[v1.ID]Marker{},
	}
	m.SetZoom(zoom)
	return m
}

func (m *Model) Place(mk Marker) {
	m.markers[mk.ID] = mk
}

func (m *Model) Remove(id v1.ID) error {
	if _, ok := m.markers[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNoMarker, id)
	}
	delete(m.markers, id)
	if m.selected == id {
		m.selected = 0
	}
	return nil
}

func (m *Model) Center(p orb.Point) { m.center = p }

func (m *Model) SetUserLocation(p orb.Point) {
	m.user = &p
}

func (m *Model) Select(id v1.ID) { m.selected = id }

// Markers lists the ids currently on the map in ascending order.
func (m *Model) Markers() []v1.ID {
	ids := make([]v1.ID, 0, len(m.markers))
	for id := range m.markers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *Model) Has(id v1.ID) bool {
	_, ok := m.markers[id]
	return ok
}

func (m *Model) SetSize(w, h int) {
	m.width, m.height = w, h
}

func (m *Model) Zoom() int { return m.zoom }

func (m *Model) SetZoom(z int) {
	switch {
	case z < MinZoom:
		z = MinZoom
	case z > MaxZoom:
		z = MaxZoom
	}
	m.zoom = z
}

func (m *Model) ZoomIn()  { m.SetZoom(m.zoom + 1) }
func (m *Model) ZoomOut() { m.SetZoom(m.zoom - 1) }

// Fit centers on b and picks the closest zoom that still shows all of it.
func (m *Model) Fit(b orb.Bound) {
	m.center = b.Center()
	cols, rows := m.gridSize()
	for z := MaxZoom; z >= MinZoom; z-- {
		lngSpan, latSpan := spans(z, cols, rows)
		if b.Max.Lon()-b.Min.Lon() < lngSpan*0.9 && b.Max.Lat()-b.Min.Lat() < latSpan*0.9 {
			m.SetZoom(z)
			return
		}
	}
	m.SetZoom(MinZoom)
}

func (m *Model) gridSize() (cols, rows int) {
	cols = m.width / cellWidth
	rows = m.height
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// spans returns the degrees of longitude and latitude visible at zoom z. At
// zoom 0 the whole world (360 degrees) fits the width.
func spans(z, cols, rows int) (lngSpan, latSpan float64) {
	lngSpan = 360 / math.Pow(2, float64(z))
	latSpan = lngSpan * float64(rows) / float64(cols)
	return lngSpan, latSpan
}

// Project maps p to a grid cell. ok is false when p is outside the view.
func (m *Model) Project(p orb.Point) (col, row int, ok bool) {
	cols, rows := m.gridSize()
	lngSpan, latSpan := spans(m.zoom, cols, rows)

	west := m.center.Lon() - lngSpan/2
	north := m.center.Lat() + latSpan/2

	x := (p.Lon() - west) / lngSpan * float64(cols)
	y := (north - p.Lat()) / latSpan * float64(rows)
	if x < 0 || y < 0 || x >= float64(cols) || y >= float64(rows) {
		return 0, 0, false
	}
	return int(x), int(y), true
}

type cell struct {
	ids  []v1.ID
	user bool
}

func (m *Model) View() string {
	cols, rows := m.gridSize()
	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
	}

	offscreen := 0
	for _, id := range m.Markers() {
		col, row, ok := m.Project(m.markers[id].Point)
		if !ok {
			offscreen++
			continue
		}
		grid[row][col].ids = append(grid[row][col].ids, id)
	}
	if m.user != nil {
		if col, row, ok := m.Project(*m.user); ok {
			grid[row][col].user = true
		}
	}

	lines := make([]string, 0, rows+1)
	for _, r := range grid {
		b := strings.Builder{}
		for _, c := range r {
			b.WriteString(m.renderCell(c))
		}
		lines = append(lines, b.String())
	}

	footer := fmt.Sprintf("zoom %d", m.zoom)
	if offscreen > 0 {
		footer += fmt.Sprintf(" • %d off screen", offscreen)
	}
	lines = append(lines, footerStyle.Render(footer))

	return frameStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderCell(c cell) string {
	switch {
	case len(c.ids) > 1:
		n := fmt.Sprintf("%d", len(c.ids))
		if len(c.ids) > 9 {
			n = "+"
		}
		style := clusterStyle
		for _, id := range c.ids {
			if id == m.selected {
				style = selectedStyle
			}
		}
		return style.Render(pad(n))
	case len(c.ids) == 1:
		if c.ids[0] == m.selected {
			return selectedStyle.Render(pad(m.cafeGlyph()))
		}
		return cafeStyle.Render(pad(m.cafeGlyph()))
	case c.user:
		return userStyle.Render(pad("@"))
	}
	return gridStyle.Render(pad("·"))
}

func (m *Model) cafeGlyph() string {
	if m.ASCII {
		return "*"
	}
	return emoji.HotBeverage.String()
}

func pad(s string) string {
	return runewidth.FillRight(runewidth.Truncate(s, cellWidth, ""), cellWidth)
}
