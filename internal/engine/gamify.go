package engine

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// UnlockTheme spends ThemeCost points on a new theme.
func (e *Engine) UnlockTheme(name string) (types.Outcome, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	stats := &e.state.UserStats

	if !types.IsTheme(name) {
		return types.Outcome{}, fmt.Errorf("unlock theme %q: %w", name, types.ErrThemeNotFound)
	}
	if stats.HasTheme(name) {
		return types.Outcome{}, fmt.Errorf("unlock theme %q: %w", name, types.ErrThemeUnlocked)
	}
	if stats.Points < types.ThemeCost {
		return types.Outcome{}, fmt.Errorf("unlock theme %q: need %d points, have %d: %w",
			name, types.ThemeCost, stats.Points, types.ErrNotEnoughPoints)
	}

	stats.AddPoints(-types.ThemeCost)
	stats.UnlockedThemes = append(stats.UnlockedThemes, name)
	return types.Outcome{
		OK:      true,
		Message: fmt.Sprintf("Congratulations! You have unlocked the '%s' theme.", name),
	}, nil
}

// SetTheme activates an unlocked theme.
func (e *Engine) SetTheme(name string) (types.Outcome, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	stats := &e.state.UserStats
	if !stats.HasTheme(name) {
		return types.Outcome{}, fmt.Errorf("set theme %q: %w", name, types.ErrThemeLocked)
	}
	stats.ActiveTheme = name
	return types.Outcome{OK: true, Message: fmt.Sprintf("Active theme set to '%s'.", name)}, nil
}

// BuyStreakFreeze spends StreakFreezeCost points on one freeze.
func (e *Engine) BuyStreakFreeze() (types.Outcome, error) {
	stats := &e.state.UserStats
	if stats.Points < types.StreakFreezeCost {
		return types.Outcome{}, fmt.Errorf("buy streak freeze: need %d points, have %d: %w",
			types.StreakFreezeCost, stats.Points, types.ErrNotEnoughPoints)
	}
	stats.AddPoints(-types.StreakFreezeCost)
	stats.StreakFreezes++
	return types.Outcome{
		OK:          true,
		FreezesLeft: stats.StreakFreezes,
		Message:     fmt.Sprintf("Streak Freeze purchased! You now have %d.", stats.StreakFreezes),
	}, nil
}

// Summary gathers the figures shown by the stats panel.
func (e *Engine) Summary() types.Summary {
	stats := e.state.UserStats
	return types.Summary{
		StoreID:             e.state.StoreID,
		Points:              stats.Points,
		Level:               types.LevelFor(stats.Points),
		Streak:              stats.Streak,
		StreakFreezes:       stats.StreakFreezes,
		CompletedToday:      e.CompletedTodayCount(),
		TotalCompleted:      e.TotalCompletedCount(),
		Achievements:        stats.UnlockedAchievements(),
		ActiveTheme:         stats.ActiveTheme,
		UnlockedThemes:      stats.UnlockedThemes,
		HighPriorityCounter: stats.HighPriorityCompleted,
	}
}
