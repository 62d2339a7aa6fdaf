package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/daemon"
	"github.com/ascend-app/ascend/internal/domain"
)

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "Date to log (YYYY-MM-DD, default today)")
	logCmd.Flags().Float64Var(&logStudy, "study", 0, "Hours studied")
	logCmd.Flags().IntVar(&logQuran, "quran", 0, "Quran pages read")
	logCmd.Flags().Float64Var(&logExpenses, "expenses", 0, "Money spent")
	logCmd.Flags().BoolVar(&logAbstained, "abstained", false, "Abstained today")
	logCmd.Flags().Float64Var(&logWeight, "weight", 0, "Body weight in kg")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "Free-form notes")
	rootCmd.AddCommand(logCmd)
}

var (
	logDate      string
	logStudy     float64
	logQuran     int
	logExpenses  float64
	logAbstained bool
	logWeight    float64
	logNotes     string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Submit or update today's daily log",
	Long: `Submit a daily log. Re-running with higher numbers earns the
difference; re-running with the same numbers earns nothing.`,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	date := logDate
	if date == "" {
		date = domain.DateOf(time.Now())
	}

	// Merge over the existing record so omitted flags don't zero fields.
	entry := domain.DailyLog{Date: date}
	if existing, err := d.Game.Log(date); err == nil && existing != nil {
		entry = *existing
	}
	if cmd.Flags().Changed("study") {
		entry.StudyHours = logStudy
	}
	if cmd.Flags().Changed("quran") {
		entry.QuranPages = logQuran
	}
	if cmd.Flags().Changed("expenses") {
		entry.Expenses = logExpenses
	}
	if cmd.Flags().Changed("abstained") {
		entry.Abstained = logAbstained
	}
	if cmd.Flags().Changed("weight") {
		entry.WeightKg = logWeight
	}
	if cmd.Flags().Changed("notes") {
		entry.Notes = logNotes
	}

	res, err := d.Game.SubmitLog(entry)
	if err != nil {
		return err
	}

	fmt.Printf("Logged %s: +%d XP (total %d, level %d)\n", date, res.EarnedXP, res.XP, res.Level)
	if res.LeveledUp {
		fmt.Printf("Level up! You are now level %d.\n", res.Level)
	}
	for _, id := range res.NewBadges {
		fmt.Printf("Badge unlocked: %s\n", id)
	}
	if res.PenaltyApplied {
		fmt.Println("Yesterday's quest went unfinished. Penalty applied.")
	}
	return nil
}
