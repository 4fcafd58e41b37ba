package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feedworks/feedctl/internal/sources"
)

var showCmd = &cobra.Command{
	Use:   "show <package-id>",
	Short: "Show the latest version of a specific package",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(_ *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}

	pkg, err := sess.facade.GetSpecificPackage(args[0])
	if err != nil {
		if errors.Is(err, sources.ErrPackageNotFound) {
			fmt.Printf("Package %s not found in the active feed\n", args[0])
			return nil
		}
		return fmt.Errorf("lookup failed: %w", err)
	}

	fmt.Printf("%s %s\n", pkg.ID, pkg.Version)
	if pkg.Description != "" {
		fmt.Println(pkg.Description)
	}
	if pkg.Homepage != "" {
		fmt.Println(pkg.Homepage)
	}
	return nil
}
