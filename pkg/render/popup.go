package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/byxorna/cafes/pkg/filter"
	"github.com/byxorna/cafes/pkg/geo"
	"github.com/byxorna/cafes/pkg/text"
	"github.com/byxorna/cafes/pkg/types/v1"
	"github.com/charmbracelet/glamour"
	"github.com/paulmach/orb"
)

// PopupMarkdown describes one cafe as it looks at now. from is the user's
// location, if known, and adds a distance line.
func PopupMarkdown(c *v1.Cafe, now time.Time, from *orb.Point) string {
	b := strings.Builder{}

	fmt.Fprintf(&b, "# %s %s\n\n", text.EmojiCafe, c.Name)

	if c.Address != nil {
		fmt.Fprintf(&b, "%s %s\n\n", text.EmojiPin, *c.Address)
	}
	if c.City != nil {
		fmt.Fprintf(&b, "%s %s\n\n", text.EmojiCity, *c.City)
	}

	if badges := AmenityBadges(c); len(badges) > 0 {
		b.WriteString(strings.Join(badges, " • "))
		b.WriteString("\n\n")
	}

	status := "closed now"
	if filter.IsOpenAt(c, now) {
		status = "open now"
	}
	fmt.Fprintf(&b, "%s %s (%s)", text.EmojiClock, filter.HoursLabel(c), status)
	if c.Crowd != nil {
		fmt.Fprintf(&b, " • %s %s", text.EmojiCrowd, filter.CrowdLabel(c, now))
	}
	b.WriteString("\n\n")

	if c.Rating != nil {
		fmt.Fprintf(&b, "%s\n\n", text.RatingStars(*c.Rating))
	}

	if from != nil {
		fmt.Fprintf(&b, "%s away\n\n", text.Distance(geo.Distance(*from, c.Point())))
	}

	if len(c.BestFor) > 0 {
		tags := make([]string, len(c.BestFor))
		for i, p := range c.BestFor {
			tags[i] = "`" + string(p) + "`"
		}
		fmt.Fprintf(&b, "Best for: %s\n", strings.Join(tags, " "))
	}

	return b.String()
}

// AmenityBadges lists the amenities a cafe offers, in a fixed order.
func AmenityBadges(c *v1.Cafe) []string {
	badges := []string{}
	if c.WiFi {
		badges = append(badges, text.EmojiCheck+" Wi-Fi")
	}
	if c.AC {
		badges = append(badges, text.EmojiCheck+" AC")
	}
	if c.HasCharging() {
		badges = append(badges, text.EmojiCheck+" Charging")
	}
	return badges
}

// Render turns popup markdown into terminal output wrapped at width.
func Render(markdown string, width int) (string, error) {
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", err
	}

	// trim lines
	lines := strings.Split(out, "\n")
	for i, s := range lines {
		lines[i] = strings.TrimRight(s, " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n"), nil
}
