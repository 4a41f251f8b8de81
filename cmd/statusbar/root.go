package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/statusbar/internal/cli"
	"github.com/aretw0/statusbar/pkg/recovery"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	args := cli.DefaultArgs()

	cmd := &cobra.Command{
		Use:   "statusbar [CONFIG]",
		Short: "Status line generator for i3bar and swaybar",
		Long: `statusbar writes the i3bar JSON protocol to stdout.

CONFIG is a TOML or YAML file, searched in the current directory,
$XDG_CONFIG_HOME/statusbar, $XDG_DATA_HOME/statusbar and /usr/share/statusbar.
Use "-" to read it from stdin.

On a fatal error the message is shown in the bar; send SIGUSR2 to restart.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			if len(positional) == 1 {
				if cmd.Flags().Changed("config") {
					return fmt.Errorf("configuration given both as argument and with --config")
				}
				args.Config = positional[0]
			}
			return cli.Execute(args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&args.Config, "config", "c", args.Config, `configuration file, or "-" for stdin`)
	noInit := strings.TrimPrefix(recovery.NoInitFlag, "--")
	flags.BoolVar(&args.NoInit, noInit, false, "do not write the protocol header (set on restart)")
	_ = flags.MarkHidden(noInit)
	flags.BoolVar(&args.NeverPause, "never-pause", false, "ask the bar never to stop this process when hidden")
	flags.IntVarP(&args.BlockingThreads, "threads", "j", args.BlockingThreads, "maximum number of concurrent blocking calls")
	flags.BoolVar(&args.Debug, "debug", false, "enable debug logging on stderr")
	flags.StringVar(&args.MetricsAddr, "metrics-addr", "", "serve /metrics and /healthz on this address (e.g. 127.0.0.1:9101)")

	return cmd
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
