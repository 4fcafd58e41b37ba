package app

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Manage configured feeds",
	Run: func(cmd *cobra.Command, _ []string) {
		if err := cmd.Help(); err != nil {
			fmt.Printf("Error displaying help: %v\n", err)
		}
	},
}

var feedsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured feeds",
	RunE:  runFeedsList,
}

func init() {
	feedsCmd.AddCommand(feedsListCmd)
}

func runFeedsList(_ *cobra.Command, _ []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}

	cfg, err := sess.resolver.Config()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Name", "Location", "Active"})
	for _, feed := range cfg.Feeds {
		active := ""
		if feed.Name == cfg.ActiveFeed {
			active = "*"
		}
		table.Append([]string{feed.Name, feed.Location, active})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

