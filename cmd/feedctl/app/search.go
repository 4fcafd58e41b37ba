package app

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/feedworks/feedctl/internal/sources"
)

var (
	searchPrerelease bool
	searchTake       int
	searchSkip       int
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search the active feed for packages",
	Long: `Search the active feed for packages whose name or description matches the
term. An empty term lists the feed's packages page by page.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchPrerelease, "prerelease", false, "Include prerelease versions")
	searchCmd.Flags().IntVar(&searchTake, "take", 15, "Maximum number of results")
	searchCmd.Flags().IntVar(&searchSkip, "skip", 0, "Number of results to skip")
}

func runSearch(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}

	q := sources.DefaultSearchQuery()
	if len(args) > 0 {
		q.Term = args[0]
	}
	q.IncludePrerelease = searchPrerelease
	q.Take = searchTake
	q.Skip = searchSkip

	results, err := sess.facade.Search(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No packages found")
		return nil
	}

	renderPackages(results)
	return nil
}

func renderPackages(packages []sources.Package) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"ID", "Version", "Description"})
	for _, pkg := range packages {
		table.Append([]string{pkg.ID, pkg.Version, pkg.Description})
	}
	if err := table.Render(); err != nil {
		fmt.Printf("failed to render table: %v\n", err)
	}
}
