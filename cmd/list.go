package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/byxorna/cafes/pkg/filter"
	"github.com/byxorna/cafes/pkg/geo"
	"github.com/byxorna/cafes/pkg/render"
	"github.com/byxorna/cafes/pkg/text"
	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

const suggestionLimit = 3

func newListCmd(global *globalFlags, clock filter.Clock) *cobra.Command {
	f := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the cafes matching the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := f.resolve(cmd, global, clock)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), q, q.result())
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func printResult(w io.Writer, q *query, r filter.Result) {
	styled := termenv.ColorProfile() != termenv.Ascii

	for _, c := range r.Cafes {
		name := c.Name
		if styled {
			name = text.HighlightMatch(name, q.state.SearchQuery, termenv.Style{})
		}
		fmt.Fprintf(w, "%s %s\n", text.EmojiCafe, name)

		status := "closed"
		if filter.IsOpenAt(c, q.now) {
			status = "open"
		}
		line := fmt.Sprintf("%s %s (%s)", text.EmojiClock, filter.HoursLabel(c), status)
		if c.Crowd != nil {
			line += fmt.Sprintf(" • %s %s", text.EmojiCrowd, filter.CrowdLabel(c, q.now))
		}
		fmt.Fprintf(w, "   %s\n", line)

		details := []string{}
		if where := location(c); where != "" {
			details = append(details, where)
		}
		if badges := render.AmenityBadges(c); len(badges) > 0 {
			details = append(details, strings.Join(badges, " "))
		}
		if len(c.BestFor) > 0 {
			details = append(details, purposes(c, styled))
		}
		if c.Rating != nil {
			details = append(details, text.RatingStars(*c.Rating))
		}
		if q.from != nil {
			details = append(details, text.Distance(geo.Distance(*q.from, c.Point()))+" away")
		}
		if len(details) > 0 {
			fmt.Fprintf(w, "   %s\n", strings.Join(details, " • "))
		}
	}

	if r.Count == 0 && strings.TrimSpace(q.state.SearchQuery) != "" {
		names := []string{}
		for _, c := range q.store.List() {
			names = append(names, c.Name)
		}
		if s := text.Suggest(q.state.SearchQuery, names, suggestionLimit); len(s) > 0 {
			fmt.Fprintf(w, "%s did you mean: %s\n", text.EmojiNotFound, strings.Join(s, ", "))
		}
	}

	fmt.Fprintln(w, filter.ResultsLabel(r.Count))
}

func location(c *v1.Cafe) string {
	parts := []string{}
	if a := c.AddressText(); a != "" {
		parts = append(parts, a)
	}
	if city := c.CityText(); city != "" {
		parts = append(parts, city)
	}
	return strings.Join(parts, ", ")
}

func purposes(c *v1.Cafe, styled bool) string {
	tags := make([]string, len(c.BestFor))
	for i, p := range c.BestFor {
		tags[i] = string(p)
	}
	if styled {
		return text.ColoredTags(tags, " ")
	}
	return strings.Join(tags, " ")
}
