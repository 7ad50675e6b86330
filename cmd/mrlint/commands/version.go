package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

const devVersion = "0.0.0-dev"

// version is set at build time:
//
//	go build -ldflags "-X github.com/bartekus/mrlint/cmd/mrlint/commands.version=v1.2.3" ./cmd/mrlint
var version string

// normalizeVersion returns raw as a semver string, or the dev version when
// raw is empty or not a version.
func normalizeVersion(raw string) string {
	if raw == "" {
		return devVersion
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return devVersion
	}
	return v.String()
}

// buildVersion prefers the linker-injected version and falls back to the
// module version recorded by `go install`.
func buildVersion() string {
	if version != "" {
		return normalizeVersion(version)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" {
		return normalizeVersion(info.Main.Version)
	}
	return devVersion
}

// NewVersionCommand returns the `mrlint version` command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mrlint",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mrlint version %s\n", buildVersion())
		},
	}
}
