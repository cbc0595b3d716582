package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoodb/zoodb/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zoodb",
		Short: "The zoo database server",
		Long: `zoodb serves the zoo database web application.

It provides the habitat catalogue API, the page shell and WebSocket
navigation sessions that keep a server-side router in sync with the
browser history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		matchCmd(),
		routesCmd(),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
