package cli

import (
	"github.com/spf13/cobra"
)

func newFocusCmd(a *app) *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Show what matters now: due today, starred, high priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, func(s *session) error {
				items := s.eng.FocusTasks(group)
				if a.flags.jsonMode {
					return writeJSON(s.w, items)
				}
				s.out.Focus(items)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "also include the next task from this group")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search task names, details and sub-tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, func(s *session) error {
				results := s.eng.SearchAll(args[0])
				if a.flags.jsonMode {
					return writeJSON(s.w, results)
				}
				s.out.Search(results)
				return nil
			})
		},
	}
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health-check",
		Short: "Analyse today's schedule for burnout risk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, func(s *session) error {
				stats := s.eng.HealthCheck()
				if a.flags.jsonMode {
					return writeJSON(s.w, stats)
				}
				s.out.Health(stats)
				return nil
			})
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show points, level, streak and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, func(s *session) error {
				summary := s.eng.Summary()
				if a.flags.jsonMode {
					return writeJSON(s.w, summary)
				}
				s.out.Stats(summary)
				return nil
			})
		},
	}
}
