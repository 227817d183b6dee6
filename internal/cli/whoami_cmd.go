package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnzilla/cclink/internal/ui"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print this identity's public key and fingerprint",
	RunE:  runWhoAmI,
}

func runWhoAmI(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator()
	if err != nil {
		return err
	}

	result, err := o.WhoAmI()
	if err != nil {
		return err
	}

	fmt.Fprintf(o.Stdout, "%s\n", result.PublicKeyZ32)
	fmt.Fprintf(o.Stdout, "fingerprint: %s\n", result.Fingerprint)
	fmt.Fprintf(o.Stdout, "key file:    %s\n", result.KeyPath)
	if result.ClipboardCopied {
		ui.PrintSuccess(o.Stdout, "copied to clipboard")
	} else {
		ui.PrintWarn(o.Stderr, "clipboard unavailable; copy the key above manually")
	}
	return nil
}
