package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app/gamification"
	"github.com/ascend-app/ascend/internal/daemon"
	"github.com/ascend-app/ascend/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show level, XP, streak, and today's habits",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	profile, err := d.Game.Profile()
	if err != nil {
		return err
	}

	today := domain.DateOf(time.Now())
	streak, err := d.Game.CurrentStreak(today)
	if err != nil {
		return err
	}

	fmt.Printf("Level %d  (%d XP, %d to next, %.0f%%)\n",
		profile.Level,
		profile.XP,
		gamification.XPToNextLevel(profile.XP),
		gamification.ProgressPct(profile.XP),
	)
	fmt.Printf("Abstinence streak: %d day(s)\n", streak)
	fmt.Printf("Badges: %d\n", len(profile.Badges))

	habits, err := d.Habits.List()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		return nil
	}
	done, err := d.Habits.CompletedToday(today)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HABIT\tSTREAK\tBEST\tTODAY")
	for _, h := range habits {
		mark := " "
		if done[h.ID] {
			mark = "x"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t[%s]\n", h.Name, h.CurrentStreak, h.LongestStreak, mark)
	}
	return w.Flush()
}
