package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kairu/internal/engine"
	"github.com/mesh-intelligence/kairu/internal/prompt"
)

// deferHour is the hour of day shutdown reschedules pending tasks to.
const deferHour = 9

func newPlanDayCmd(a *app) *cobra.Command {
	var (
		ids        string
		clearStars bool
	)
	cmd := &cobra.Command{
		Use:   "plan-day",
		Short: "Guided planning: star up to three priorities for today",
		Long: "Show today's candidates and star up to three of them. Answers not\n" +
			"given as flags are asked for interactively.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			return a.mutate(cmd, func(s *session) error {
				s.out.Heading("☀️ Let's plan your day! Here are your top candidates:")
				candidates := s.eng.FocusTasks("")
				if len(candidates) == 0 && !f.Changed("ids") {
					s.out.Notice("You have no urgent or starred tasks to plan. Feel free to add some!")
					return nil
				}
				if len(candidates) > 0 {
					s.out.Candidates(candidates)
				}

				clearAll := clearStars
				if !f.Changed("clear-stars") {
					var err error
					if clearAll, err = prompt.Confirm(a.asker, "Clear all other stars first?"); err != nil {
						return err
					}
				}

				answer := ids
				if !f.Changed("ids") {
					var err error
					answer, err = a.asker.Ask(fmt.Sprintf("Enter the IDs of up to %d tasks to star as today's priorities:", engine.MaxDailyPriorities))
					if err != nil {
						return err
					}
				}
				chosen, err := parseIDList(answer)
				if err != nil {
					return err
				}

				res, err := s.eng.PlanDay(chosen, clearAll)
				if err != nil {
					return err
				}
				if clearAll {
					s.out.Notice("Cleared all stars.")
				}
				for _, id := range res.Missing {
					s.out.Notice(fmt.Sprintf("Task ID %d not found among active tasks.", id))
				}
				s.out.Outcome(res.Outcome)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&ids, "ids", "", "comma-separated ids of the tasks to star")
	cmd.Flags().BoolVar(&clearStars, "clear-stars", false, "unstar every active task first")
	return cmd
}

// parseIDList parses "1, 2,3" into ids. Empty input yields no ids.
func parseIDList(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, userError("invalid input %q: enter numbers separated by commas", s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func newShutdownCmd(a *app) *cobra.Command {
	var (
		reschedule bool
		win        string
	)
	cmd := &cobra.Command{
		Use:   "shutdown",
		Short: "Guided end-of-day review",
		Long: "Review what you finished today, optionally move every pending task to\n" +
			"tomorrow 09:00, and reflect on the day.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			return a.mutate(cmd, func(s *session) error {
				s.out.Heading("🌙 Let's wrap up the day.")
				s.out.Accomplished(s.eng.CompletedToday())

				pending := s.eng.PendingTasks()
				if len(pending) == 0 {
					s.out.Success("All tasks cleared. You're all done! 🎉")
					s.out.Stats(s.eng.Summary())
					return nil
				}
				s.out.TaskList("-- ⏳ Pending Tasks --", pending)

				move := reschedule
				if !f.Changed("reschedule") {
					var err error
					question := fmt.Sprintf("Move all %d pending tasks to tomorrow at 9 AM?", len(pending))
					if move, err = prompt.Confirm(a.asker, question); err != nil {
						return err
					}
				}
				if move {
					s.out.Outcome(s.eng.DeferPending(s.eng.TomorrowAt(deferHour)))
				}

				s.out.Heading("--- Daily Report ---")
				s.out.Stats(s.eng.Summary())
				if !f.Changed("win") {
					if _, err := a.asker.Ask("What was one win today? (Press Enter to finish)"); err != nil {
						return err
					}
				}
				s.out.Success("Shutdown routine complete. Well done today! 👏")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&reschedule, "reschedule", false, "move pending tasks to tomorrow 09:00 without asking")
	cmd.Flags().StringVar(&win, "win", "", "today's win, skips the reflection question")
	return cmd
}

func newUnstuckCmd(a *app) *cobra.Command {
	var (
		action string
		value  string
		yes    bool
	)
	cmd := &cobra.Command{
		Use:   "unstuck",
		Short: "Find a stale task and decide what to do with it",
		Long: "Find the oldest task untouched for stale_days and break it down,\n" +
			"reschedule it, delete it, or skip it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			return a.mutate(cmd, func(s *session) error {
				s.out.Heading("🔍 Let's find a task that might be stuck...")
				item, err := s.eng.FindStaleTask(a.cfg.StaleDays)
				if err != nil {
					return err
				}
				if item == nil {
					s.out.Success("No stale tasks found. Your list is fresh!")
					return nil
				}
				s.out.Stale(item)
				task := item.Task

				choice := action
				if !f.Changed("action") {
					if choice, err = a.asker.Ask("What's the next action? ([B]reak down, [R]eschedule, [D]elete, [S]kip):"); err != nil {
						return err
					}
				}
				// ask returns the flag value when set, otherwise prompts.
				ask := func(question string) (string, error) {
					if f.Changed("value") {
						return value, nil
					}
					return a.asker.Ask(question)
				}

				switch strings.ToLower(strings.TrimSpace(choice)) {
				case "b", "break", "break down":
					desc, err := ask("First sub-task:")
					if err != nil || desc == "" {
						return err
					}
					out, err := s.eng.AddSubTask(task.ID, desc)
					if err != nil {
						return err
					}
					s.out.Outcome(out)
				case "r", "reschedule":
					due, err := ask("When do you want to work on this? (YYYY-MM-DD HH:MM):")
					if err != nil {
						return err
					}
					out, err := s.eng.EditTask(task.ID, engine.TaskEdit{Due: &due})
					if err != nil {
						return err
					}
					s.out.Outcome(out)
				case "d", "delete":
					ok := yes
					if !yes {
						if ok, err = prompt.Confirm(a.asker, fmt.Sprintf("Are you sure you want to delete '%s'?", task.Name)); err != nil {
							return err
						}
					}
					if !ok {
						s.out.Plain("Okay, we'll leave it for now.")
						return nil
					}
					out, err := s.eng.DeleteTask(task.ID)
					if err != nil {
						return err
					}
					s.out.Notice(out.Message)
				case "s", "skip":
					s.out.Plain("Okay, we'll leave it for now.")
				default:
					s.out.Notice("Invalid option. No action taken.")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&action, "action", "", "break, reschedule, delete or skip (b/r/d/s)")
	cmd.Flags().StringVar(&value, "value", "", "sub-task text for break, or due date for reschedule")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")
	return cmd
}
