// Package main provides the keyboardist demo entry point.
package main

import (
	"os"

	"github.com/kpumuk/keyboardist/internal/cmd"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
	BuiltBy = ""
)

func main() {
	if err := cmd.Execute(Version, Commit, Date, BuiltBy); err != nil {
		os.Exit(1)
	}
}
