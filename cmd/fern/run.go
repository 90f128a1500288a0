package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Compile then invoke the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, ir := compile(args[0])
			if code != 0 {
				lastExitCode = code
				return nil
			}
			lastExitCode = invokeBackend(ir)
			return nil
		},
	}
}

// invokeBackend hands generated SSA text to the external backend binary
// (QBE + the runtime C helpers), neither of which this front end defines
// (spec.md §6 "the backend binary... remain external collaborators").
// When no backend is installed, this reports the IR was generated and
// stops there rather than failing the whole pipeline.
func invokeBackend(ir string) int {
	backend, err := exec.LookPath("fern-backend")
	if err != nil {
		if !quiet {
			fmt.Fprintln(os.Stderr, "fern: no fern-backend on PATH; compiled IR only")
		}
		return 0
	}
	cmd := exec.Command(backend)
	cmd.Stdin = stringReader(ir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func stringReader(s string) *os.File {
	r, w, err := os.Pipe()
	if err != nil {
		return nil
	}
	go func() {
		defer w.Close()
		_, _ = w.WriteString(s)
	}()
	return r
}
