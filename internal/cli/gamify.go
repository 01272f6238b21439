package cli

import (
	"github.com/spf13/cobra"
)

func newThemesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "Show the theme shop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, func(s *session) error {
				summary := s.eng.Summary()
				if a.flags.jsonMode {
					return writeJSON(s.w, map[string]any{
						"active_theme":    summary.ActiveTheme,
						"unlocked_themes": summary.UnlockedThemes,
						"points":          summary.Points,
					})
				}
				s.out.Themes(summary)
				return nil
			})
		},
	}
}

func newUnlockThemeCmd(a *app) *cobra.Command {
	return outcomeCmd(a, &cobra.Command{
		Use:   "unlock-theme <name>",
		Short: "Spend points to unlock a theme",
		Args:  cobra.ExactArgs(1),
	}, func(s *session, args []string) error {
		out, err := s.eng.UnlockTheme(args[0])
		if err != nil {
			return err
		}
		s.out.Outcome(out)
		return nil
	})
}

func newSetThemeCmd(a *app) *cobra.Command {
	return outcomeCmd(a, &cobra.Command{
		Use:   "set-theme <name>",
		Short: "Activate an unlocked theme",
		Args:  cobra.ExactArgs(1),
	}, func(s *session, args []string) error {
		out, err := s.eng.SetTheme(args[0])
		if err != nil {
			return err
		}
		s.out.Outcome(out)
		return nil
	})
}

func newBuyFreezeCmd(a *app) *cobra.Command {
	return outcomeCmd(a, &cobra.Command{
		Use:   "buy-freeze",
		Short: "Spend points on a streak freeze",
		Args:  cobra.NoArgs,
	}, func(s *session, args []string) error {
		out, err := s.eng.BuyStreakFreeze()
		if err != nil {
			return err
		}
		s.out.Outcome(out)
		return nil
	})
}
