// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"fmt"
	"os/user"

	"github.com/spf13/cobra"

	"coquito/repl"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse statements interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())

			name := "there"
			if currentUser, err := user.Current(); err == nil {
				name = currentUser.Username
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome to the coquito REPL, %s!\n", name)

			// a session has no deadline; the timeout applies to file parsing
			return repl.Start(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.ParserOptions(context.Background())...)
		},
	}
}
