package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/daemon"
	"github.com/ascend-app/ascend/internal/domain"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create your profile and data directory",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Game.InitProfile(); err != nil {
		if errors.Is(err, domain.ErrProfileExists) {
			fmt.Println("Profile already exists. You're good to go.")
			return nil
		}
		return err
	}

	if err := daemon.SaveConfig(d.Config); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Profile created. Data lives in %s\n", daemon.AscendHome())
	fmt.Println("Log your first day with: ascend log --study 1.0 --abstained")
	return nil
}
