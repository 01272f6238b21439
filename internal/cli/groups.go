package cli

import (
	"github.com/spf13/cobra"
)

func newGroupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage task groups",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a new task group",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.mutate(cmd, func(s *session) error {
					out, err := s.eng.AddGroup(args[0])
					if err != nil {
						return err
					}
					s.out.Outcome(out)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List all task groups",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.view(cmd, func(s *session) error {
					if a.flags.jsonMode {
						return writeJSON(s.w, s.eng.Groups())
					}
					s.out.Groups(s.eng.Groups())
					return nil
				})
			},
		},
	)
	return cmd
}

func newGoalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage long-term goals",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name> [description]",
			Short: "Add a new long-term goal",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				var desc *string
				if len(args) == 2 {
					desc = &args[1]
				}
				return a.mutate(cmd, func(s *session) error {
					out, err := s.eng.AddGoal(args[0], desc)
					if err != nil {
						return err
					}
					s.out.Outcome(out)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List all goals",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.view(cmd, func(s *session) error {
					if a.flags.jsonMode {
						return writeJSON(s.w, s.eng.Goals())
					}
					s.out.Goals(s.eng.Goals())
					return nil
				})
			},
		},
	)
	return cmd
}
