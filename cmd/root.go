package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	repoFlag  string
	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "gh-pr-threads [PR_NUMBER]",
	Short: "Browse inline review comments on a pull request",
	Long: `Browse GitHub pull request inline review comments from the terminal.

Without arguments the PR is located from the current branch. Comments are
shown as one line per thread with file and line position; from the
interactive list you can open the full thread, reply, resolve and
unresolve threads, and copy or open comment URLs.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runList,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Repository in OWNER/NAME form (default: detected from git remotes)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")

	addListFlags(rootCmd)
	rootCmd.AddCommand(listCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
