package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"image-browser/internal/commands"
	"image-browser/internal/logging"
	"image-browser/internal/picker"
	"image-browser/internal/workers"
)

// app holds the streams and flags shared by every subcommand.
type app struct {
	in     *os.File
	out    io.Writer
	errOut io.Writer

	verbose  bool
	workers  int
	maxDepth int

	// picker overrides the terminal picker when set.
	picker picker.Picker
}

func newApp(in *os.File, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "imgscan",
		Short: "Inspect image folders from the command line",
		Long: `imgscan runs the image browser's operations without the HTTP server.

Every command prints indented JSON on stdout. Logs go to stderr and are
limited to warnings unless --verbose is set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.SetOutput(a.errOut)
			if a.verbose {
				logging.SetLevel(logging.LevelDebug)
			} else {
				logging.SetLevel(logging.LevelWarn)
			}
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	root.PersistentFlags().IntVar(&a.workers, "workers", 0, "Concurrent blocking tasks (0 uses $"+workers.EnvOverride+" or the CPU count)")
	root.PersistentFlags().IntVar(&a.maxDepth, "max-depth", commands.DefaultMaxTreeDepth, "Largest tree depth accepted")

	root.AddCommand(
		newScanCmd(a),
		newAdjacentCmd(a),
		newTreeCmd(a),
		newMetaCmd(a),
		newThumbCmd(a),
		newWatchCmd(a),
		newPickCmd(a),
	)
	return root
}

// service builds a command service with the given watcher and picker.
func (a *app) service(w commands.Watcher, p picker.Picker) *commands.Service {
	return commands.New(commands.Config{
		Pool:         workers.NewPool(a.workers),
		Watcher:      w,
		Picker:       p,
		MaxTreeDepth: a.maxDepth,
	})
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
