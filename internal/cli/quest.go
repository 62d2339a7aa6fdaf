package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/daemon"
	"github.com/ascend-app/ascend/internal/domain"
)

func init() {
	questAddCmd.Flags().StringVar(&questDate, "date", "", "Quest date (YYYY-MM-DD, default today)")
	questDoneCmd.Flags().StringVar(&questDate, "date", "", "Quest date (YYYY-MM-DD, default today)")
	questCmd.AddCommand(questAddCmd, questDoneCmd, questShowCmd)
	rootCmd.AddCommand(questCmd)
}

var questDate string

var questCmd = &cobra.Command{
	Use:   "quest",
	Short: "Manage the day's unexpected quest",
	Long: `An unexpected quest is a one-off challenge for a single day.
Leaving it unfinished costs XP when the next day's log is submitted.`,
}

var questAddCmd = &cobra.Command{
	Use:   "add DESCRIPTION...",
	Short: "Set today's quest",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		date := questDateOrToday()
		if err := d.Game.CreateQuest(date, strings.Join(args, " ")); err != nil {
			return err
		}
		fmt.Printf("Quest set for %s. Finish it or pay the price.\n", date)
		return nil
	},
}

var questDoneCmd = &cobra.Command{
	Use:   "done",
	Short: "Mark the day's quest complete",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		date := questDateOrToday()
		if err := d.Game.CompleteQuest(date); err != nil {
			return err
		}
		fmt.Printf("Quest for %s complete.\n", date)
		return nil
	},
}

var questShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the day's quest",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		quest, err := d.Game.Quest(questDateOrToday())
		if err != nil {
			return err
		}
		if quest == nil {
			fmt.Println("No quest today.")
			return nil
		}
		state := "pending"
		if quest.Completed {
			state = "complete"
		}
		fmt.Printf("%s [%s]: %s\n", quest.Date, state, quest.Description)
		return nil
	},
}

func questDateOrToday() string {
	if questDate != "" {
		return questDate
	}
	return domain.DateOf(time.Now())
}
