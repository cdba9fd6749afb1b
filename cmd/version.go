package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// releaseRepository is where release builds are published
const releaseRepository = "s0up4200/yfantasy"

var (
	version   = "dev"
	buildTime = "unknown"

	checkLatest bool
)

// SetVersion records the build information injected by the linker
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and optionally check for a newer release",
	Args:  cobra.NoArgs,
	// No config or credentials are needed to print the version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check GitHub for a newer release")
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "yfantasy %s (built %s)\n", version, buildTime)

	if !checkLatest {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	release, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(releaseRepository))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		fmt.Fprintln(out, "No releases found")
		return nil
	}

	newer, err := isNewer(version, release.Version())
	if err != nil {
		fmt.Fprintf(out, "Latest release: %s (%s)\n", release.Version(), release.URL)
		return nil
	}
	if newer {
		fmt.Fprintf(out, "A newer release is available: %s\n  %s\n", release.Version(), release.URL)
	} else {
		fmt.Fprintln(out, "✓ You are running the latest release")
	}
	return nil
}

// isNewer reports whether latest is a higher semantic version than current.
// Development builds are never comparable.
func isNewer(current, latest string) (bool, error) {
	cur, err := semver.ParseTolerant(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("current version %q: %w", current, err)
	}
	lat, err := semver.ParseTolerant(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, fmt.Errorf("latest version %q: %w", latest, err)
	}
	return lat.GT(cur), nil
}
