package types

// Achievement keys. Flags are set once and never cleared.
const (
	AchievementPlanner      = "planner"
	AchievementOnARoll      = "on_a_roll"
	AchievementHighAchiever = "high_achiever"
	AchievementDelegator    = "delegator"
)

// Achievements lists every achievement key in display order.
var Achievements = []string{
	AchievementPlanner,
	AchievementOnARoll,
	AchievementHighAchiever,
	AchievementDelegator,
}

// Themes. DefaultTheme is always unlocked.
const (
	DefaultTheme = "default"
	ThemeForest  = "forest"
	ThemeOcean   = "ocean"
)

// Themes lists every theme that can be unlocked.
var Themes = []string{DefaultTheme, ThemeForest, ThemeOcean}

// Shop prices in points.
const (
	ThemeCost        = 500
	StreakFreezeCost = 10
)

// Levels in ascending order.
const (
	LevelNovice          = "Novice"
	LevelApprentice      = "Apprentice"
	LevelTaskMaster      = "Task Master"
	LevelProductivityPro = "Productivity Pro"
	LevelFocusGuru       = "Focus Guru"
)

// UserStats is the process-wide gamification record.
type UserStats struct {
	Points                int             `json:"points" yaml:"points" toml:"points"`
	Level                 string          `json:"level" yaml:"level" toml:"level"`
	Streak                int             `json:"streak" yaml:"streak" toml:"streak"`
	LastCompletedDate     *Date           `json:"last_completed_date" yaml:"last_completed_date,omitempty" toml:"last_completed_date,omitempty"`
	StreakFreezes         int             `json:"streak_freezes" yaml:"streak_freezes" toml:"streak_freezes"`
	ActiveTheme           string          `json:"active_theme" yaml:"active_theme" toml:"active_theme"`
	UnlockedThemes        []string        `json:"unlocked_themes" yaml:"unlocked_themes" toml:"unlocked_themes"`
	Achievements          map[string]bool `json:"achievements" yaml:"achievements" toml:"achievements"`
	HighPriorityCompleted int             `json:"high_priority_completed" yaml:"high_priority_completed" toml:"high_priority_completed"`
}

// LevelFor maps cumulative points to a level name.
func LevelFor(points int) string {
	switch {
	case points < 100:
		return LevelNovice
	case points < 250:
		return LevelApprentice
	case points < 500:
		return LevelTaskMaster
	case points < 1000:
		return LevelProductivityPro
	default:
		return LevelFocusGuru
	}
}

// IsTheme reports whether name is a known theme.
func IsTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

// HasTheme reports whether name has been unlocked.
func (s *UserStats) HasTheme(name string) bool {
	for _, t := range s.UnlockedThemes {
		if t == name {
			return true
		}
	}
	return false
}

// Unlock sets the achievement flag and reports whether it was newly set.
func (s *UserStats) Unlock(achievement string) bool {
	if s.Achievements == nil {
		s.Achievements = make(map[string]bool)
	}
	if s.Achievements[achievement] {
		return false
	}
	s.Achievements[achievement] = true
	return true
}

// AddPoints adjusts points, never dropping below zero, and refreshes the level.
func (s *UserStats) AddPoints(delta int) {
	s.Points += delta
	if s.Points < 0 {
		s.Points = 0
	}
	s.Level = LevelFor(s.Points)
}

// UnlockedAchievements returns the set flags in display order.
func (s *UserStats) UnlockedAchievements() []string {
	var out []string
	for _, a := range Achievements {
		if s.Achievements[a] {
			out = append(out, a)
		}
	}
	return out
}

// NewUserStats returns the first-run defaults.
func NewUserStats() UserStats {
	s := UserStats{}
	s.applyDefaults()
	return s
}

// applyDefaults fills fields an older store may lack.
func (s *UserStats) applyDefaults() {
	if s.Points < 0 {
		s.Points = 0
	}
	if s.Streak < 0 {
		s.Streak = 0
	}
	if s.StreakFreezes < 0 {
		s.StreakFreezes = 0
	}
	if s.HighPriorityCompleted < 0 {
		s.HighPriorityCompleted = 0
	}
	s.Level = LevelFor(s.Points)
	if !s.HasTheme(DefaultTheme) {
		s.UnlockedThemes = append([]string{DefaultTheme}, s.UnlockedThemes...)
	}
	if s.ActiveTheme == "" || !s.HasTheme(s.ActiveTheme) {
		s.ActiveTheme = DefaultTheme
	}
	if s.Achievements == nil {
		s.Achievements = make(map[string]bool, len(Achievements))
	}
	for _, a := range Achievements {
		if _, ok := s.Achievements[a]; !ok {
			s.Achievements[a] = false
		}
	}
}
