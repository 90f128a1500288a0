package main

import (
	"fmt"
	"os"

	"github.com/fern-lang/fern/internal/diag"
	"github.com/fern-lang/fern/internal/parser"
	"github.com/fern-lang/fern/internal/types"
	"github.com/fern-lang/fern/internal/validate"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Run lexer+parser+validator+checker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lastExitCode = runCheck(args[0])
			return nil
		},
	}
}

// runCheck runs the full diagnostic pipeline (no codegen) and prints each
// rendered diagnostic, matching §6 "check <file>": exit 0 on
// success, 1 on any diagnostic.
func runCheck(path string) int {
	src, err := readSource(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger()
	useColor := diag.ShouldUseColor(colorMode)

	file, errs := parser.Parse(path, src, logger)
	if len(errs) > 0 {
		for _, e := range errs {
			printDiag(diag.Diagnostic{Severity: diag.Error, Pos: e.Token.Pos, Message: e.Message, Stage: "parse"}, src, useColor)
		}
		return 1
	}
	if impErrs := parser.ResolveImports(file, sourceDirs); len(impErrs) > 0 {
		for _, e := range impErrs {
			printDiag(diag.Diagnostic{Severity: diag.Error, Pos: e.Token.Pos, Message: e.Message, Stage: "import"}, src, useColor)
		}
		return 1
	}

	if ok, verr := validate.Validate(file, logger); !ok {
		printDiag(diag.Diagnostic{Severity: diag.Error, Pos: verr.Pos, Message: verr.Message, Stage: "validate"}, src, useColor)
		return 1
	}

	checker := types.NewChecker(logger)
	typeErrs := checker.Check(file)
	if len(typeErrs) > 0 {
		for _, e := range typeErrs {
			printDiag(diag.Diagnostic{Severity: diag.Error, Pos: e.Pos, Message: e.Message, Stage: "type"}, src, useColor)
		}
		return 1
	}

	if !quiet {
		fmt.Printf("%s: ok\n", path)
	}
	return 0
}

func printDiag(d diag.Diagnostic, src string, useColor bool) {
	fmt.Fprintln(os.Stderr, d.RenderColor(src, useColor))
}
