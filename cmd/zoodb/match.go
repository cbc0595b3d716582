package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoodb/zoodb/internal/errors"
	"github.com/zoodb/zoodb/pkg/routematch"
)

func matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match PATTERN PATH",
		Short: "Match a path against a route pattern",
		Long: `Match PATH against PATTERN and print the bound parameters as JSON.

Segments of PATTERN starting with ':' are parameters. A successful match
of a pattern without parameters prints {}. A failed match prints
"no match". Invalid percent-encoding in a parameter segment is an error.`,
		Example: `  zoodb match /animals/:id /animals/42
  zoodb match /users/:name /users/John%20Doe`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("E200").WithDetail("match needs exactly PATTERN and PATH")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			params, ok, err := routematch.Match(args[0], args[1])
			if err != nil {
				return errors.New("E001").Wrap(err)
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no match")
				return nil
			}
			data, err := json.Marshal(params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
