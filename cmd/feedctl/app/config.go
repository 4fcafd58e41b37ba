package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Run: func(cmd *cobra.Command, _ []string) {
		if err := cmd.Help(); err != nil {
			fmt.Printf("Error displaying help: %v\n", err)
		}
	},
}

var configMoveCmd = &cobra.Command{
	Use:   "move <new-directory>",
	Short: "Move the configuration file to a new directory",
	Long: `Move feeds.yaml (and its sidecar metadata file, if present) to a new
directory and remember that directory for future sessions. A failed move is
rolled back completely; the previous configuration stays in effect.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigMove,
}

func init() {
	configCmd.AddCommand(configMoveCmd)
}

func runConfigMove(_ *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}

	if err := sess.relocator.Move(args[0]); err != nil {
		return fmt.Errorf("move failed, configuration unchanged: %w", err)
	}
	sess.resolver.Invalidate()

	fmt.Printf("Configuration moved to %s\n", sess.store.FullPath())
	return nil
}
