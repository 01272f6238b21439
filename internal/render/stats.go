package render

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// HighPriorityThreshold is the number of high-priority tasks due today at
// which the health check warns when no break is scheduled.
const HighPriorityThreshold = 4

// Stats prints the progress panel.
func (r *Renderer) Stats(s types.Summary) {
	lines := []string{
		"🏆 Total Points: " + r.bold(r.palette.Accent).Render(fmt.Sprint(s.Points)),
		"🏅 Current Level: " + r.bold(r.palette.Warning).Render(s.Level),
		"🔥 Current Streak: " + r.bold(r.palette.Danger).Render(fmt.Sprintf("%d day(s)", s.Streak)),
		"🧊 Streak Freezes: " + r.bold(r.palette.Info).Render(fmt.Sprintf("%d available", s.StreakFreezes)),
		"",
		"✅ Tasks Completed (Today): " + r.bold(r.palette.Success).Render(fmt.Sprint(s.CompletedToday)),
		"✅ Tasks Completed (All Time): " + r.bold(r.palette.Success).Render(fmt.Sprint(s.TotalCompleted)),
	}
	if len(s.Achievements) > 0 {
		titles := make([]string, len(s.Achievements))
		for i, key := range s.Achievements {
			titles[i] = AchievementTitle(key)
		}
		lines = append(lines, "", "🎖️ Achievements: "+strings.Join(titles, ", "))
	}
	r.panel("📊 Your Kairu Stats", strings.Join(lines, "\n"), r.palette.Info)
}

// HealthAdvice returns the burnout advice for today's workload.
func HealthAdvice(h types.HealthStats) string {
	switch {
	case h.TotalToday == 0:
		return "Your schedule for today is clear. A great time to plan or rest!"
	case h.HighPriorityCount >= HighPriorityThreshold && h.RestTaskCount == 0:
		return "Warning: A high number of priority tasks are scheduled with no breaks. " +
			"To avoid burnout, consider adding some downtime with '--tags \"#rest\"'."
	case h.RestTaskCount > 0:
		return "Great job scheduling breaks! This is key to sustainable productivity."
	default:
		return "Your schedule looks manageable. Have a productive day!"
	}
}

// Health prints the health-check panel.
func (r *Renderer) Health(h types.HealthStats) {
	advice := HealthAdvice(h)
	if h.TotalToday == 0 {
		r.panel("Health Check Complete", r.bold(r.palette.Success).Render(advice), r.palette.Success)
		return
	}

	adviceColor := r.palette.Accent
	switch {
	case h.HighPriorityCount >= HighPriorityThreshold && h.RestTaskCount == 0:
		adviceColor = r.palette.Warning
	case h.RestTaskCount > 0:
		adviceColor = r.palette.Success
	}
	body := strings.Join([]string{
		fmt.Sprintf("You have %d tasks scheduled for today.", h.TotalToday),
		fmt.Sprintf("- %d are high priority.", h.HighPriorityCount),
		fmt.Sprintf("- You have scheduled %d breaks.", h.RestTaskCount),
		"",
		r.bold(adviceColor).Render(advice),
	}, "\n")
	r.panel("🩺 Health Check Complete", body, r.palette.Info)
}

// Themes prints the theme shop.
func (r *Renderer) Themes(s types.Summary) {
	r.Heading("--- Theme Shop ---")
	unlocked := make(map[string]bool, len(s.UnlockedThemes))
	for _, t := range s.UnlockedThemes {
		unlocked[t] = true
	}
	for _, name := range types.Themes {
		status := fmt.Sprintf("🔒 (%d points)", types.ThemeCost)
		if unlocked[name] {
			status = "✅ Unlocked"
		}
		active := ""
		if name == s.ActiveTheme {
			active = " (Active)"
		}
		r.Plain(fmt.Sprintf("- %s: %s%s", Title(name), status, active))
	}
}
