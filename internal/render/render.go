// Package render turns engine results into themed terminal output. Colours
// come from lipgloss palettes keyed by the user's active theme; tables are
// laid out with text/tabwriter the same way for every theme.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// Display layouts.
const (
	dueLayout  = "2006-01-02 15:04"
	timeLayout = "15:04"
	notSet     = "N/A"
)

// Palette names the six roles a theme colours.
type Palette struct {
	Accent    lipgloss.Color
	Highlight lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Info      lipgloss.Color
}

// ANSI colour indexes so output respects the terminal's own scheme.
var palettes = map[string]Palette{
	types.DefaultTheme: {Accent: "6", Highlight: "5", Success: "2", Warning: "3", Danger: "1", Info: "4"},
	types.ThemeForest:  {Accent: "2", Highlight: "10", Success: "2", Warning: "3", Danger: "9", Info: "12"},
	types.ThemeOcean:   {Accent: "4", Highlight: "12", Success: "6", Warning: "11", Danger: "9", Info: "4"},
}

// PaletteFor returns the palette of theme, or the default palette for an
// unknown name.
func PaletteFor(theme string) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[types.DefaultTheme]
}

var achievementTitles = map[string]string{
	types.AchievementPlanner:      "The Planner",
	types.AchievementOnARoll:      "On a Roll",
	types.AchievementHighAchiever: "High Achiever",
	types.AchievementDelegator:    "The Delegator",
}

// AchievementTitle returns the display title of an achievement key.
func AchievementTitle(key string) string {
	if title, ok := achievementTitles[key]; ok {
		return title
	}
	return Title(strings.ReplaceAll(key, "_", " "))
}

var titleCaser = cases.Title(language.English)

// Title capitalises each word of s.
func Title(s string) string {
	return titleCaser.String(s)
}

// Renderer writes styled output for one theme.
type Renderer struct {
	w       io.Writer
	palette Palette
	lg      *lipgloss.Renderer
}

// New returns a renderer writing to w with the palette of theme. Colour is
// dropped automatically when w is not a terminal.
func New(w io.Writer, theme string) *Renderer {
	return &Renderer{
		w:       w,
		palette: PaletteFor(theme),
		lg:      lipgloss.NewRenderer(w),
	}
}

func (r *Renderer) fg(c lipgloss.Color) lipgloss.Style {
	return r.lg.NewStyle().Foreground(c)
}

func (r *Renderer) bold(c lipgloss.Color) lipgloss.Style {
	return r.fg(c).Bold(true)
}

func (r *Renderer) println(style lipgloss.Style, s string) {
	fmt.Fprintln(r.w, style.Render(s))
}

// panel draws body inside a rounded border with a title line.
func (r *Renderer) panel(title, body string, border lipgloss.Color) {
	content := body
	if title != "" {
		content = r.lg.NewStyle().Bold(true).Render(title) + "\n" + body
	}
	box := r.lg.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	fmt.Fprintln(r.w, box.Render(content))
}

// table returns a tabwriter whose header row is already written.
func (r *Renderer) table(headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	rule := make([]string, len(headers))
	for i, h := range headers {
		rule[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	fmt.Fprintln(tw, strings.Join(rule, "\t"))
	return tw
}

// Success prints msg in the success colour.
func (r *Renderer) Success(msg string) {
	r.println(r.fg(r.palette.Success), msg)
}

// Notice prints msg in the warning colour.
func (r *Renderer) Notice(msg string) {
	r.println(r.fg(r.palette.Warning), msg)
}

// Failure prints msg in bold danger colour.
func (r *Renderer) Failure(msg string) {
	r.println(r.bold(r.palette.Danger), msg)
}

// Heading prints a bold section heading preceded by a blank line.
func (r *Renderer) Heading(msg string) {
	fmt.Fprintln(r.w)
	r.println(r.bold(r.palette.Accent), msg)
}

// Plain prints msg without styling.
func (r *Renderer) Plain(msg string) {
	fmt.Fprintln(r.w, msg)
}

// Outcome prints an operation result followed by any achievements it
// unlocked and a streak-freeze note.
func (r *Renderer) Outcome(out types.Outcome) {
	if out.Message != "" {
		if out.OK {
			r.Success(out.Message)
		} else {
			r.Notice(out.Message)
		}
	}
	r.Achievements(out.Achievements)
	if out.StreakSaved {
		r.println(r.fg(r.palette.Accent),
			fmt.Sprintf("Your streak was saved by a freeze! You have %d left.", out.FreezesLeft))
	}
}

// Achievements announces newly unlocked achievements.
func (r *Renderer) Achievements(keys []string) {
	for _, key := range keys {
		r.println(r.bold(r.palette.Highlight),
			fmt.Sprintf("🏆 Achievement Unlocked: %s!", AchievementTitle(key)))
	}
}

func formatDue(ts *types.Timestamp, layout string) string {
	if ts == nil {
		return notSet
	}
	return ts.Local().Format(layout)
}

func statusSymbol(status string) string {
	if status == types.StatusDone {
		return "✅"
	}
	return "⏳"
}

func starred(t *types.Task) string {
	if t.Starred {
		return "⭐ " + t.Name
	}
	return t.Name
}
