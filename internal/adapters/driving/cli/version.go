package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if outputJSON {
			return printJSON(cmd, map[string]string{
				"version": version,
				"go":      runtime.Version(),
				"os":      runtime.GOOS + "/" + runtime.GOARCH,
			})
		}
		cmd.Printf("receipta version %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
