package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app/habit"
	"github.com/ascend-app/ascend/internal/daemon"
	"github.com/ascend-app/ascend/internal/domain"
)

func init() {
	habitAddCmd.Flags().StringVar(&habitIcon, "icon", "", "Icon for the habit")
	habitCmd.AddCommand(habitAddCmd, habitListCmd, habitCheckCmd, habitUncheckCmd, habitRmCmd)
	rootCmd.AddCommand(habitCmd)
}

var habitIcon string

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage daily habits",
}

var habitAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		h, err := d.Habits.Create(args[0], habitIcon)
		if err != nil {
			return err
		}
		fmt.Printf("Created habit %q (%s)\n", h.Name, h.ID)
		return nil
	},
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits with streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		habits, err := d.Habits.List()
		if err != nil {
			return err
		}
		if len(habits) == 0 {
			fmt.Println("No habits yet. Add one with: ascend habit add NAME")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTREAK\tBEST\tLAST")
		for _, h := range habits {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", h.ID, h.Name, h.CurrentStreak, h.LongestStreak, h.LastCompleted)
		}
		return w.Flush()
	},
}

var habitCheckCmd = &cobra.Command{
	Use:   "check NAME",
	Short: "Mark a habit done today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleHabit(args[0], true)
	},
}

var habitUncheckCmd = &cobra.Command{
	Use:   "uncheck NAME",
	Short: "Undo today's completion of a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleHabit(args[0], false)
	},
}

var habitRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete a habit and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		h, err := findHabit(d.Habits, args[0])
		if err != nil {
			return err
		}
		if err := d.Habits.Delete(h.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted habit %q\n", h.Name)
		return nil
	},
}

func toggleHabit(name string, check bool) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	h, err := findHabit(d.Habits, name)
	if err != nil {
		return err
	}

	today := domain.DateOf(time.Now())
	if check {
		h, err = d.Habits.Check(h.ID, today)
	} else {
		h, err = d.Habits.Uncheck(h.ID, today)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s: streak %d (best %d)\n", h.Name, h.CurrentStreak, h.LongestStreak)
	return nil
}

// findHabit resolves a habit by exact id or by name.
func findHabit(svc *habit.Service, ref string) (*domain.Habit, error) {
	if h, err := svc.Get(ref); err == nil {
		return h, nil
	}
	habits, err := svc.List()
	if err != nil {
		return nil, err
	}
	for i := range habits {
		if habits[i].Name == ref {
			return &habits[i], nil
		}
	}
	return nil, domain.ErrHabitNotFound
}
