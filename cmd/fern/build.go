package main

import (
	"fmt"
	"os"

	"github.com/fern-lang/fern/internal/codegen"
	"github.com/fern-lang/fern/internal/diag"
	"github.com/fern-lang/fern/internal/parser"
	"github.com/fern-lang/fern/internal/types"
	"github.com/fern-lang/fern/internal/validate"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var outPath string
	var hash bool
	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Run the full pipeline and emit SSA IR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, ir := compile(args[0])
			lastExitCode = code
			if code != 0 {
				return nil
			}
			if hash {
				sum, err := codegen.Fingerprint(ir)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					lastExitCode = 1
					return nil
				}
				fmt.Println(sum)
				return nil
			}
			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(ir), 0o644); err != nil {
					fmt.Fprintln(os.Stderr, err)
					lastExitCode = 1
					return nil
				}
				return nil
			}
			fmt.Print(ir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write SSA IR to this file instead of stdout")
	cmd.Flags().BoolVar(&hash, "hash", false, "print the canonical content hash instead of the IR text")
	return cmd
}

// compile runs the full front-end pipeline (lex, parse, validate,
// type-check, codegen) and returns the process exit code plus the
// generated SSA text (empty on failure).
func compile(path string) (int, string) {
	src, err := readSource(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1, ""
	}
	logger := newLogger()
	useColor := diag.ShouldUseColor(colorMode)

	file, errs := parser.Parse(path, src, logger)
	if len(errs) > 0 {
		for _, e := range errs {
			printDiag(diag.Diagnostic{Severity: diag.Error, Pos: e.Token.Pos, Message: e.Message, Stage: "parse"}, src, useColor)
		}
		return 1, ""
	}
	if impErrs := parser.ResolveImports(file, sourceDirs); len(impErrs) > 0 {
		for _, e := range impErrs {
			printDiag(diag.Diagnostic{Severity: diag.Error, Pos: e.Token.Pos, Message: e.Message, Stage: "import"}, src, useColor)
		}
		return 1, ""
	}
	if ok, verr := validate.Validate(file, logger); !ok {
		printDiag(diag.Diagnostic{Severity: diag.Error, Pos: verr.Pos, Message: verr.Message, Stage: "validate"}, src, useColor)
		return 1, ""
	}
	checker := types.NewChecker(logger)
	if typeErrs := checker.Check(file); len(typeErrs) > 0 {
		for _, e := range typeErrs {
			printDiag(diag.Diagnostic{Severity: diag.Error, Pos: e.Pos, Message: e.Message, Stage: "type"}, src, useColor)
		}
		return 1, ""
	}
	ir, genErrs := codegen.Generate(file, logger)
	for _, e := range genErrs {
		printDiag(diag.Diagnostic{Severity: diag.Warning, Pos: e.Pos, Message: e.Message, Stage: "codegen"}, src, useColor)
	}
	return 0, ir
}
