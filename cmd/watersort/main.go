// Package main is the entry point for the watersort CLI.
//
// All functionality lives in internal/cli, which defines the cobra
// commands. Build-time variables (version, commit, date) are injected via
// ldflags and default to "dev", "none" and "unknown".
package main

import (
	"github.com/shinji-kodama/watersort/internal/cli"
)

// version, commit, and date are set at build time via ldflags, e.g.
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/watersort
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
