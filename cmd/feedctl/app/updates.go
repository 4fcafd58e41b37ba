package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/feedworks/feedctl/internal/sources"
)

var (
	updatesPrerelease bool
	updatesManifest   string
)

var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "List available updates for installed packages",
	Long: `List the packages from the active feed that are newer than the installed
versions recorded in the manifest file (a YAML list of id/version pairs).`,
	RunE: runUpdates,
}

func init() {
	updatesCmd.Flags().BoolVar(&updatesPrerelease, "prerelease", false, "Include prerelease versions")
	updatesCmd.Flags().StringVar(&updatesManifest, "installed", "installed.yaml", "Path to the installed-packages manifest")
}

func runUpdates(_ *cobra.Command, _ []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}

	installed, err := readInstalledManifest(updatesManifest)
	if err != nil {
		return err
	}

	updates, err := sess.facade.GetUpdates(installed, sources.UpdateQuery{
		IncludePrerelease: updatesPrerelease,
	})
	if err != nil {
		return fmt.Errorf("update listing failed: %w", err)
	}

	if len(updates) == 0 {
		fmt.Println("All packages are up to date")
		return nil
	}

	renderPackages(updates)
	return nil
}

func readInstalledManifest(path string) ([]sources.Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read installed manifest %s: %w", path, err)
	}

	var installed []sources.Package
	if err := yaml.Unmarshal(data, &installed); err != nil {
		return nil, fmt.Errorf("failed to parse installed manifest %s: %w", path, err)
	}
	return installed, nil
}
