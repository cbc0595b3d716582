package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zoodb/zoodb/internal/server"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the application view routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATTERN\tPARAMS")
			for _, r := range server.AppRoutes().Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Pattern, strings.Join(r.Pattern.Params(), ","))
			}
			return w.Flush()
		},
	}
}
