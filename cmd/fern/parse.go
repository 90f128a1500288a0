package main

import (
	"fmt"
	"os"

	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/diag"
	"github.com/fern-lang/fern/internal/parser"
	"github.com/fern-lang/fern/internal/validate"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Run lexer+parser+validator, print the golden AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lastExitCode = runParse(args[0])
			return nil
		},
	}
}

func runParse(path string) int {
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

	fmt.Print(ast.PrintFile(path, file.Stmts))
	return 0
}
