package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	sonic "github.com/tphakala/go-audio-sonic"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "sonic %s\n", sonic.Version)
		if IsVerbose() {
			fmt.Fprintf(w, "  go:   %s\n", runtime.Version())
			fmt.Fprintf(w, "  arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
