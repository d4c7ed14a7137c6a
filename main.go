package main

import (
	"fmt"
	"os"
)

func main() {
	err := NewCommand().Execute()
	// PersistentPostRun is skipped when a command fails
	closeLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}
}
