package main

import (
	"fmt"
	"os"

	"github.com/hugo-lorenzo-mato/waitfile/cmd/waitfile/cmd"
)

// Version information - set by goreleaser at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersion(version, commit, date)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "waitfile:", cmd.FormatError(err))
	}
	os.Exit(cmd.ExitCode(err))
}
