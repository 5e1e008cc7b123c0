// Command devtool bundles local checks for MelodyQuest deployments.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	out := newConsole(os.Stdout)

	if len(os.Args) < 2 {
		printUsage(out)
		os.Exit(1)
	}

	cmd, ok := findCommand(os.Args[1])
	if !ok {
		out.Fail("unknown command: %s", os.Args[1])
		printUsage(out)
		os.Exit(1)
	}

	if err := cmd.run(out, os.Args[2:]); err != nil {
		out.Fail("%s: %v", cmd.name, err)
		os.Exit(1)
	}
}
