package main

import (
	"fmt"
	"runtime"
)

// Build metadata, injected by the release pipeline.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	Execute()
}

func versionString() string {
	short := commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("twig %s (%s, %s, %s)", version, short, date, runtime.Version())
}
