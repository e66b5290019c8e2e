package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	goruntime "runtime"

	"golang.org/x/term"

	"github.com/spf13/cobra"
	"github.com/tkwhitaker/gatelock/internal/cli"
)

var (
	// Build info (set via ldflags).
	Version = "dev"
	Build   = "unknown"
)

var (
	// Global flags.
	flagJSON  bool
	flagQuiet bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gatelock",
		Short: "Port-bind process-singleton lock",
		Long: `Gatelock ensures at most one instance of a process runs at a time
by holding an exclusive TCP bind on a loopback port.

The kernel releases the bind when the holder dies (even SIGKILL),
so there are no stale locks to clean up.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "JSON output for scripting")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "Suppress non-essential output")

	// Set version for --version flag
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("gatelock v{{.Version}} (build: " + Build + ", " + goruntime.Version() + ")\n")

	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(holdCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <port>",
		Short: "Show whether the lock port is held",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := cli.ParsePort(args[0])
			if err != nil {
				return err
			}

			result := cli.Status(port)

			if flagJSON {
				// Output as JSON
				output, _ := json.MarshalIndent(result, "", "  ")
				fmt.Println(string(output))
			} else if !flagQuiet {
				fmt.Print(cli.FormatStatus(result))
			}

			// Exit code 1 when the lock is held (like systemctl status)
			if result.Held {
				os.Exit(1)
			}

			return nil
		},
	}
}

func holdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hold <port>",
		Short: "Acquire the lock and hold it until interrupted",
		Long: `Binds the lock port and keeps it bound until SIGINT or SIGTERM.
Fails immediately if another process already holds the lock.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := cli.ParsePort(args[0])
			if err != nil {
				return err
			}

			if !flagQuiet && term.IsTerminal(int(os.Stdout.Fd())) {
				fmt.Printf("Holding lock on 127.0.0.1:%d (Ctrl-C to release)\n", port)
			}

			return cli.Hold(context.Background(), port)
		},
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <port> -- <command> [args...]",
		Short: "Run a command while holding the lock",
		Long: `Acquires the lock, runs the command with inherited stdio, and
releases the lock when the command exits. The command's exit code is
propagated. Fails with exit code 1 if the lock is already held.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := cli.ParsePort(args[0])
			if err != nil {
				return err
			}

			code, err := cli.RunGuarded(port, args[1:])
			if err != nil {
				return err
			}
			if code != 0 {
				os.Exit(code)
			}

			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show gatelock version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagJSON {
				output := map[string]string{
					"version":    Version,
					"build":      Build,
					"go_version": goruntime.Version(),
				}
				data, err := json.MarshalIndent(output, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			} else {
				fmt.Printf("gatelock v%s (build: %s, %s)\n", Version, Build, goruntime.Version())
			}
			return nil
		},
	}
}
