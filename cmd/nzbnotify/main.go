// Package main is the entry point for the nzbnotify NZBGet extension.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/pipeline"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

// app carries what a command needs from the process, so commands can be run
// in tests without touching the real environment.
type app struct {
	environ []string
	out     io.Writer

	// Flags shared by every command.
	configPath string
	envFile    string
	verbose    bool

	// code is the process exit status chosen by the command that ran.
	code int
}

// run executes the CLI and returns the exit status. Usage and flag errors
// exit with NZBGet's error code.
func run(args, environ []string, stdout, stderr io.Writer) int {
	a := &app{environ: environ, out: stdout}
	root := rootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return pipeline.ExitError
	}
	return a.code
}

func rootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "nzbnotify",
		Short: "NZBClient push notifications for NZBGet",
		Long: "nzbnotify is an NZBGet queue and post-processing extension. Run without\n" +
			"arguments it reads the NZBGet environment and sends one notification.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.code = a.executeEvent(cmd.Context())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to nzbnotify.toml (default: $NZBNOTIFY_CONFIG or <scriptdir>/nzbnotify.toml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "dotenv file with NZBPO_*/NZBPP_*/NZBNA_* values, used under the process environment")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug lines")

	root.AddCommand(
		testCmd(a),
		initCmd(),
		decryptCmd(a),
		keygenCmd(),
		manifestCmd(),
	)

	return root
}
