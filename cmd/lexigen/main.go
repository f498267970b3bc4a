// Command lexigen compiles a .lexdecl declaration into a generated Go
// lexer source file.
package main

import (
	"fmt"
	"os"

	"github.com/coregx/lexigen/internal/lexigen"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var in, out, pkg string

	cmd := &cobra.Command{
		Use:           "lexigen",
		Short:         "Generate a lexer from a .lexdecl declaration",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == "" || out == "" || pkg == "" {
				return fmt.Errorf("lexigen: --in, --out and --package are all required")
			}
			return lexigen.Run(in, out, pkg)
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "path to the .lexdecl declaration file")
	cmd.Flags().StringVar(&out, "out", "", "path to write the generated Go source file")
	cmd.Flags().StringVar(&pkg, "package", "", "package name for the generated file")

	return cmd
}
