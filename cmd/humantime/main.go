package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/mrled/humantime/cmd/humantime/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}
