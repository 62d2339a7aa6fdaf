package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/daemon"
)

func init() {
	rewardCmd.AddCommand(rewardDrawCmd, rewardListCmd)
	rootCmd.AddCommand(rewardCmd)
}

var rewardCmd = &cobra.Command{
	Use:   "reward",
	Short: "Draw and list milestone rewards",
}

var rewardDrawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw one random unclaimed reward",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		reward, err := d.Game.DrawReward()
		if err != nil {
			return err
		}
		if reward == nil {
			fmt.Println("Every reward is already claimed. Well done.")
			return nil
		}
		fmt.Printf("You drew: %s [%s]\n  %s\n", reward.Name, reward.Rarity, reward.Description)
		return nil
	},
}

var rewardListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the reward catalog and what you've claimed",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		catalog, granted, err := d.Game.Rewards()
		if err != nil {
			return err
		}
		claimed := make(map[string]bool, len(granted))
		for _, g := range granted {
			claimed[g.ID] = true
		}

		for _, r := range catalog {
			mark := " "
			if claimed[r.ID] {
				mark = "x"
			}
			fmt.Printf("[%s] %-20s %-9s %s\n", mark, r.Name, r.Rarity, r.Description)
		}
		return nil
	},
}
