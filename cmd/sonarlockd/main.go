// Command sonarlockd is the sonar presence-detection daemon: it drives the
// DSP pipeline against either a real audio device or a seeded fake backend
// and, when a run ends, passes the last buffer's gated action request to the
// screen-action executor.
//
// Usage:
//
//	sonarlockd devices
//	sonarlockd run    [--config path] [--backend real|fake] [--scenario ...] [flags...]
//	sonarlockd analyze [--config path] [--backend fake] [--scenario ...] [--csv path] [flags...]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/AutoCookies/sonarlock/internal/logging"
)

func usage() {
	fmt.Fprint(os.Stderr, `Usage:
  sonarlockd devices
  sonarlockd run [--config path] [--backend real|fake] [--scenario static|human|pet|vibration] [flags...]
  sonarlockd analyze [--config path] [--backend fake] [--scenario ...] [--csv path] [flags...]

Flags:
`)
	pflag.PrintDefaults()
}

func main() {
	log := logging.Default()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	command := os.Args[1]
	if command == "help" || command == "-h" || command == "--help" {
		usage()
		return
	}

	flags := registerSessionFlags()
	if err := pflag.CommandLine.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	var err error
	switch command {
	case "devices":
		err = runDevices(log, flags)
	case "run":
		err = runRun(log, flags)
	case "analyze":
		err = runAnalyze(log, flags)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Error("command failed", "command", command, "error", err)
		os.Exit(1)
	}
}
