package main

import (
	"github.com/osmg/osmg/internal/cli"
	_ "github.com/osmg/osmg/shapes/hss"
	_ "github.com/osmg/osmg/shapes/rect"
	_ "github.com/osmg/osmg/shapes/w"
)

// These variables are populated by the build via -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	cli.Execute()
}
