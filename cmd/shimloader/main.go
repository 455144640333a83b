// Package main is the entry point for the shimloader CLI.
package main

import (
	"fmt"
	"os"

	"github.com/seabright/shimloader/cmd/shimloader/commands"
	"github.com/seabright/shimloader/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var xerr *errors.ExitError
	if errors.As(err, &xerr) {
		if xerr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "%s\n", xerr.Suggestion)
		}
		os.Exit(xerr.Code)
	}
	os.Exit(errors.ExitUser)
}
