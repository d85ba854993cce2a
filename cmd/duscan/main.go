package main

import (
	"os"

	"github.com/rcastner/duscan/internal/cmd"
	"github.com/rcastner/duscan/internal/display"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		display.PrintError(os.Stderr, err)
		os.Exit(cmd.ExitCode(err))
	}
}
