package main

import (
	"context"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/jokarl/branchsource/internal/cli"
)

// Version information (set via ldflags during build, or read from build info)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if info, ok := debug.ReadBuildInfo(); ok {
		// Works when installed via `go install module@version`
		if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		if commit == "none" {
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					commit = setting.Value
					if len(commit) > 7 {
						commit = commit[:7]
					}
				case "vcs.time":
					date = setting.Value
				}
			}
		}
	}

	// Interrupts cancel discovery and running git commands
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersionInfo(version, commit, date)
	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
