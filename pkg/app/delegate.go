// https://github.com/charmbracelet/bubbletea/blob/master/examples/list-fancy/delegate.go
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/byxorna/cafes/pkg/filter"
	"github.com/byxorna/cafes/pkg/text"
	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const descriptionWidth = 48

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}).
				Render
)

// cafeChosenMsg asks the application to open the popup for a cafe.
type cafeChosenMsg struct{ id v1.ID }

// cafeItem is one row of the results list.
type cafeItem struct {
	cafe *v1.Cafe
	now  time.Time
}

func (i cafeItem) Title() string { return i.cafe.Name }

func (i cafeItem) Description() string {
	parts := []string{filter.HoursLabel(i.cafe)}
	if i.cafe.Crowd != nil {
		parts = append(parts, string(filter.CrowdLabel(i.cafe, i.now)))
	}
	if city := i.cafe.CityText(); city != "" {
		parts = append(parts, city)
	}
	purposes := make([]string, len(i.cafe.BestFor))
	for j, p := range i.cafe.BestFor {
		purposes[j] = string(p)
	}
	if len(purposes) > 0 {
		parts = append(parts, strings.Join(purposes, ","))
	}
	return text.TruncateWithTail(strings.Join(parts, " • "), descriptionWidth, "…")
}

func (i cafeItem) FilterValue() string { return i.cafe.Name }

func itemsFromCafes(cafes []*v1.Cafe, now time.Time) []list.Item {
	lx := make([]list.Item, len(cafes))
	for i := range cafes {
		lx[i] = cafeItem{cafe: cafes[i], now: now}
	}
	return lx
}

func newCafeDelegate(keys *delegateKeyMap) list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.UpdateFunc = func(msg tea.Msg, m *list.Model) tea.Cmd {
		it, ok := m.SelectedItem().(cafeItem)
		if !ok {
			return nil
		}

		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, keys.choose):
				id := it.cafe.ID
				return tea.Batch(
					m.NewStatusMessage(statusMessageStyle(fmt.Sprintf("%s %s", text.EmojiCafe, it.cafe.Name))),
					func() tea.Msg { return cafeChosenMsg{id: id} },
				)
			}
		}

		return nil
	}

	help := []key.Binding{keys.choose}

	d.ShortHelpFunc = func() []key.Binding {
		return help
	}

	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{help}
	}

	return d
}

type delegateKeyMap struct {
	choose key.Binding
}

// Additional short help entries. This satisfies the help.KeyMap interface and
// is entirely optional.
func (d delegateKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		d.choose,
	}
}

// Additional full help entries. This satisfies the help.KeyMap interface and
// is entirely optional.
func (d delegateKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			d.choose,
		},
	}
}

func newDelegateKeyMap() *delegateKeyMap {
	return &delegateKeyMap{
		choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
	}
}
