// Package app provides the feedctl command tree.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/feedworks/feedctl/internal/config"
	"github.com/feedworks/feedctl/internal/logger"
	"github.com/feedworks/feedctl/internal/prefs"
	"github.com/feedworks/feedctl/internal/query"
	"github.com/feedworks/feedctl/internal/resolver"
	"github.com/feedworks/feedctl/internal/sources"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:               "feedctl",
	DisableAutoGenTag: true,
	Short:             "Query and manage package feeds",
	Long: `feedctl resolves which package feed (or combination of feeds) governs
package search, lookup, and update listing, and keeps that resolution in sync
with a relocatable configuration file.

Feeds configured in feeds.yaml can be overridden for a single invocation with
repeated --source flags; overrides take unconditional precedence.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Initialize(viper.GetBool("verbose"))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		if err := cmd.Help(); err != nil {
			logger.Errorf("Error displaying help: %v", err)
		}
	},
}

// NewRootCmd creates the root command for feedctl.
func NewRootCmd() *cobra.Command {
	rootCmd.PersistentFlags().String("config-dir", "", "Directory holding feeds.yaml (defaults to the remembered choice)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringArray("source", nil, "Override the configured feeds for this invocation (repeatable)")

	if err := viper.BindPFlag("config-dir", rootCmd.PersistentFlags().Lookup("config-dir")); err != nil {
		logger.Fatalf("Failed to bind config-dir flag: %v", err)
	}
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		logger.Fatalf("Failed to bind verbose flag: %v", err)
	}

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(updatesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(feedsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("feedctl %s (%s)\n", Version, runtime.Version())
	},
}

// session wires the resolution stack the way the host application would:
// one store, one resolver, one facade per process invocation.
type session struct {
	store     *config.Store
	prefs     prefs.Store
	resolver  *resolver.Resolver
	relocator *config.Relocator
	facade    *query.Facade
}

func newSession() (*session, error) {
	userDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine user config directory: %w", err)
	}
	baseDir := filepath.Join(userDir, "feedctl")

	preferences := prefs.NewFileStore(filepath.Join(baseDir, "prefs.yaml"))

	configDir := viper.GetString("config-dir")
	if configDir == "" {
		remembered, err := preferences.Get(config.PrefKeyConfigDir)
		if err != nil {
			return nil, err
		}
		configDir = remembered
	}
	if configDir == "" {
		configDir = baseDir
	}

	store := config.NewStore(configDir)
	factory := sources.NewSourceFactory(sources.NewKeyringCredentialStore())
	res := resolver.New(store, factory, resolver.NoopNotifier{}, os.Args[1:])

	return &session{
		store:     store,
		prefs:     preferences,
		resolver:  res,
		relocator: config.NewRelocator(store, preferences, noopAssets{}),
		facade:    query.New(res),
	}, nil
}

// noopAssets stands in for the host's asset tracker; the CLI has no assets
// to rescan.
type noopAssets struct{}

func (noopAssets) RescanAssets() {}
