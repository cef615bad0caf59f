package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/oakwood-commons/diggity/cmd"
	"github.com/oakwood-commons/diggity/pkg/logger"
)

func main() {
	exitCode := 0
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitCode = 1
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.Code
		}
	}

	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
