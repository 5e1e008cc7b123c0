package main

import (
	"os"
	"strings"
)

const (
	defaultAPIURL = "http://localhost:8080"
	envAPIURL     = "API_URL"
)

// command is one devtool subcommand
type command struct {
	name    string
	args    string
	summary string
	run     func(out *console, args []string) error
}

var commands = []command{
	{"check-coverage", "[-run] [-html] [-threshold N] [pkgs]", "Check a coverage profile against a threshold", checkCoverage},
	{"check-experience", "[file]", "Validate an experience file (default: EXPERIENCE_FILE)", checkExperience},
	{"check-storage", "", "Open the configured storage and ping it", checkStorage},
	{"health-check", "[url]", "Check a running server's health endpoints", healthCheck},
	{"test-sse", "[url]", "Create a player, navigate once and print the streamed events", testSSE},
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printUsage(out *console) {
	width := 0
	for _, c := range commands {
		width = max(width, len(c.name)+len(c.args)+1)
	}

	out.Info("usage: devtool <command> [args...]")
	for _, c := range commands {
		left := strings.TrimSpace(c.name + " " + c.args)
		out.Info("  %-*s  %s", width, left, c.summary)
	}
}

// apiURL returns the server base URL from the first argument, API_URL or the default
func apiURL(args []string) string {
	if len(args) > 0 {
		return strings.TrimSuffix(args[0], "/")
	}
	if u := os.Getenv(envAPIURL); u != "" {
		return strings.TrimSuffix(u, "/")
	}
	return defaultAPIURL
}
