package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/kairu/internal/engine"
)

// outcomeCmd builds a command whose RunE mutates state through op and
// prints the resulting outcome.
func outcomeCmd(a *app, cmd *cobra.Command, op func(s *session, args []string) error) *cobra.Command {
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return a.mutate(c, func(s *session) error {
			return op(s, args)
		})
	}
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var in engine.NewTask
	var details string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			if cmd.Flags().Changed("details") {
				in.Details = &details
			}
			return a.mutate(cmd, func(s *session) error {
				out, err := s.eng.AddTask(in)
				if err != nil {
					return err
				}
				s.out.Outcome(out)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&in.Group, "group", "g", "", "the group to add the task to (required)")
	f.StringVar(&details, "details", "", "optional details about the task")
	f.StringVarP(&in.Priority, "priority", "p", "medium", "low, medium or high")
	f.StringVarP(&in.Due, "due", "d", "", "due date as 'YYYY-MM-DD HH:MM'")
	f.StringVarP(&in.Recurring, "recurring", "r", "", "daily, weekly or monthly")
	f.StringVar(&in.Tags, "tags", "", "comma-separated tags")
	f.StringVar(&in.Goal, "goal", "", "link the task to a long-term goal")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var name, details, priority, due, recurring, tags, goal string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing task",
		Long:  "Edit an existing task. Pass 'none' to --due, --recurring or --goal to clear it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f := cmd.Flags()
			edit := engine.TaskEdit{
				Name:      changed(f, "name", &name),
				Details:   changed(f, "details", &details),
				Priority:  changed(f, "priority", &priority),
				Due:       changed(f, "due", &due),
				Recurring: changed(f, "recurring", &recurring),
				Tags:      changed(f, "tags", &tags),
				Goal:      changed(f, "goal", &goal),
			}
			return a.mutate(cmd, func(s *session) error {
				out, err := s.eng.EditTask(id, edit)
				if err != nil {
					return err
				}
				s.out.Outcome(out)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "the new name")
	f.StringVar(&details, "details", "", "the new details")
	f.StringVar(&priority, "priority", "", "the new priority")
	f.StringVar(&due, "due", "", "the new due date as 'YYYY-MM-DD HH:MM', or 'none'")
	f.StringVar(&recurring, "recurring", "", "daily, weekly, monthly, or 'none'")
	f.StringVar(&tags, "tags", "", "replace the tags with a comma-separated list")
	f.StringVar(&goal, "goal", "", "link to a goal, or 'none' to unlink")
	return cmd
}

// changed returns v when the flag was set on the command line.
func changed(f *pflag.FlagSet, name string, v *string) *string {
	if f.Changed(name) {
		return v
	}
	return nil
}

func newViewCmd(a *app) *cobra.Command {
	var (
		filter  engine.TaskFilter
		groupBy string
		showLog bool
	)
	cmd := &cobra.Command{
		Use:   "view [id]",
		Short: "View tasks",
		Long: "With an id, show one task in detail. Otherwise list tasks by group\n" +
			"(with optional filters and sorting) or by goal.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, func(s *session) error {
				if len(args) == 1 {
					id, err := parseID(args[0])
					if err != nil {
						return err
					}
					task, group, err := s.eng.Task(id)
					if err != nil {
						return err
					}
					if a.flags.jsonMode {
						return writeJSON(s.w, task)
					}
					s.out.TaskDetail(task, group, showLog)
					return nil
				}

				switch groupBy {
				case "goal":
					goals := s.eng.TasksByGoal()
					if a.flags.jsonMode {
						return writeJSON(s.w, goals)
					}
					s.out.GoalTasks(goals)
					return nil
				case "group", "":
				default:
					return userError("--group-by must be group or goal, got %q", groupBy)
				}

				groups, err := s.eng.ListTasks(filter)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(s.w, groups)
				}
				s.out.GroupTasks(groups)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.BoolVar(&showLog, "show-log", false, "show the progress log of a single task")
	f.StringVar(&groupBy, "group-by", "group", "organise the list by group or goal")
	f.StringVarP(&filter.Group, "group", "g", "", "show only this group")
	f.StringVarP(&filter.Sort, "sort", "s", "", "sort by priority or due_date")
	f.StringVar(&filter.Priority, "filter-priority", "", "show only low, medium or high priority tasks")
	f.StringVar(&filter.Status, "filter-status", "", "pending, or done for archived tasks")
	f.BoolVar(&filter.Starred, "starred", false, "show only starred tasks")
	f.StringVar(&filter.Tag, "filter-tag", "", "show only tasks carrying this tag")
	return cmd
}

func newViewCompletedCmd(a *app) *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "view-completed",
		Short: "View archived tasks for a group, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, func(s *session) error {
				tasks, err := s.eng.CompletedForGroup(group)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(s.w, tasks)
				}
				s.out.Completed(tasks, group)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "the group whose completed tasks to show (required)")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	return outcomeCmd(a, &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
	}, func(s *session, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		out, err := s.eng.MarkTaskDone(id)
		if err != nil {
			return err
		}
		s.out.Outcome(out)
		return nil
	})
}

func newDeleteCmd(a *app) *cobra.Command {
	return outcomeCmd(a, &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
	}, func(s *session, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		out, err := s.eng.DeleteTask(id)
		if err != nil {
			return err
		}
		s.out.Notice(out.Message)
		return nil
	})
}

func newLogCmd(a *app) *cobra.Command {
	var message string
	cmd := outcomeCmd(a, &cobra.Command{
		Use:   "log <id>",
		Short: "Log progress on a task",
		Args:  cobra.ExactArgs(1),
	}, func(s *session, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		out, err := s.eng.LogProgress(id, message)
		if err != nil {
			return err
		}
		s.out.Outcome(out)
		return nil
	})
	cmd.Flags().StringVarP(&message, "message", "m", "", "the progress note (required)")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newStarCmd(a *app, star bool) *cobra.Command {
	use, short := "star <id>", "Star an important task"
	if !star {
		use, short = "unstar <id>", "Unstar a task"
	}
	return outcomeCmd(a, &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
	}, func(s *session, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		out, err := s.eng.ToggleStar(id, star)
		if err != nil {
			return err
		}
		s.out.Outcome(out)
		return nil
	})
}

func newSubCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sub",
		Short: "Manage sub-tasks",
	}
	cmd.AddCommand(
		outcomeCmd(a, &cobra.Command{
			Use:   "add <parent-id> <description>",
			Short: "Add a sub-task to a task",
			Args:  cobra.ExactArgs(2),
		}, func(s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out, err := s.eng.AddSubTask(id, args[1])
			if err != nil {
				return err
			}
			s.out.Outcome(out)
			return nil
		}),
		outcomeCmd(a, &cobra.Command{
			Use:   "done <parent-id> <position>",
			Short: "Mark a sub-task as done (position 1 is sub-task <parent-id>.1)",
			Args:  cobra.ExactArgs(2),
		}, func(s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return userError("invalid sub-task position %q", args[1])
			}
			out, err := s.eng.MarkSubTaskDone(id, pos)
			if err != nil {
				return err
			}
			s.out.Outcome(out)
			return nil
		}),
	)
	return cmd
}
