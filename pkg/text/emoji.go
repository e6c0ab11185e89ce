package text

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/enescakir/emoji"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	Ellipsis = "…"
)

var (
	EmojiCafe     = emoji.HotBeverage.String()
	EmojiPin      = emoji.RoundPushpin.String()
	EmojiCity     = emoji.Cityscape.String()
	EmojiClock    = emoji.AlarmClock.String()
	EmojiCrowd    = emoji.BustsInSilhouette.String()
	EmojiStar     = emoji.Star.String()
	EmojiCheck    = emoji.CheckMark.String()
	EmojiWiFi     = emoji.AntennaBars.String()
	EmojiAC       = emoji.Snowflake.String()
	EmojiSockets  = emoji.ElectricPlug.String()
	EmojiNotFound = emoji.ThinkingFace.String()
)

var (
	tagColorHashSalt uint32 = 6969420
	// NOTE: changing these dimensions uncovers some awkward indexing issues in the color
	// selection algo for tags. avoid if you can help it
	tagColors = colorGrid(4, 4)
)

// Distance renders meters the way a map would, e.g. "350 m" or "1.2 km".
func Distance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", math.Round(meters))
	}
	return humanize.SIWithDigits(meters, 1, "m")
}

// RatingStars draws a 0-5 rating as whole stars plus a half.
func RatingStars(rating float64) string {
	whole := int(rating)
	s := strings.Repeat(EmojiStar, whole)
	if rating-float64(whole) >= 0.5 {
		s += "½"
	}
	return fmt.Sprintf("%s %.1f", s, rating)
}

// ColoredTags renders tags sorted, each in a color derived from its name so
// a tag always looks the same.
func ColoredTags(tags []string, joiner string) string {
	sortedTags := make([]string, len(tags))
	copy(sortedTags, tags)
	sort.Strings(sortedTags)

	var colorizedTags []string
	for _, t := range sortedTags {
		colorizedTags = append(colorizedTags,
			lipgloss.NewStyle().Foreground(lipgloss.Color(TagColor(t))).Render(t))
	}
	return strings.Join(colorizedTags, joiner)
}

// TagColor is the hex color a tag is drawn in.
func TagColor(tag string) string {
	colorRangeX := len(tagColors)
	colorRangeY := len(tagColors[0])

	hasher := fnv.New32a()
	hasher.Write([]byte(tag))
	hash := hasher.Sum32() + tagColorHashSalt
	n := colorRangeX * colorRangeY
	idx := hash % uint32(n)
	x := int(idx) / colorRangeX
	y := int(idx) - (x * colorRangeY)
	return tagColors[x][y]
}

func colorGrid(xSteps, ySteps int) [][]string {
	x0y0, _ := colorful.Hex("#F25D94")
	x1y0, _ := colorful.Hex("#EDFF82")
	x0y1, _ := colorful.Hex("#643AFF")
	x1y1, _ := colorful.Hex("#14F9D5")

	x0 := make([]colorful.Color, ySteps)
	for i := range x0 {
		x0[i] = x0y0.BlendLuv(x0y1, float64(i)/float64(ySteps))
	}

	x1 := make([]colorful.Color, ySteps)
	for i := range x1 {
		x1[i] = x1y0.BlendLuv(x1y1, float64(i)/float64(ySteps))
	}

	grid := make([][]string, ySteps)
	for x := 0; x < ySteps; x++ {
		y0 := x0[x]
		grid[x] = make([]string, xSteps)
		for y := 0; y < xSteps; y++ {
			grid[x][y] = y0.BlendLuv(x1[x], float64(y)/float64(xSteps)).Hex()
		}
	}

	return grid
}
