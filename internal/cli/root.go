// Package cli wires cobra commands to the orchestrator for cclink's six
// verbs: init, whoami, the implicit publish at the root command, pickup,
// list, and revoke.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
	"github.com/johnzilla/cclink/internal/log"
)

// Version is set by main.go.
var Version = "dev"

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:     "cclink [session-id]",
	Short:   "Hand off a running coding-agent session to another machine",
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runPublish,
}

// Execute runs the CLI application and returns the process exit code.
func Execute(version string) int {
	Version = version
	rootCmd.Version = version

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\ninterrupted")
		os.Exit(130)
	}()

	if err := rootCmd.Execute(); err != nil {
		if cclinkerrors.IsCancelled(err) {
			return 130
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging to stderr")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if debugFlag {
			log.EnableDebugLogging()
		}
	}

	rootCmd.Flags().Int64("ttl", 86400, "application TTL in seconds for the published record")
	rootCmd.Flags().Bool("qr", false, "render a QR code for the pickup command")
	rootCmd.Flags().String("share", "", "z32 public key to encrypt the record for, instead of self")
	rootCmd.Flags().Bool("burn", false, "best-effort revoke the record immediately after pickup")
	rootCmd.Flags().Bool("pin", false, "protect the record with a PIN, prompted for interactively, instead of the default identity encryption")
	rootCmd.Flags().Bool("yes", false, "skip interactive confirmation")

	rootCmd.AddCommand(initCmd, whoamiCmd, pickupCmd, listCmd, revokeCmd)
}
