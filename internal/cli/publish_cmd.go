package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnzilla/cclink/internal/orchestrator"
	"github.com/johnzilla/cclink/internal/qr"
	"github.com/johnzilla/cclink/internal/ui"
)

func runPublish(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator()
	if err != nil {
		return err
	}

	ttl, _ := cmd.Flags().GetInt64("ttl")
	share, _ := cmd.Flags().GetString("share")
	burn, _ := cmd.Flags().GetBool("burn")
	wantPIN, _ := cmd.Flags().GetBool("pin")
	yes, _ := cmd.Flags().GetBool("yes")
	wantQR, _ := cmd.Flags().GetBool("qr")

	sessionID := ""
	if len(args) == 1 {
		sessionID = args[0]
	}

	pin := ""
	if wantPIN {
		pin, err = o.Prompt.ReadSecret("PIN: ")
		if err != nil {
			return err
		}
	}

	result, err := o.Publish(orchestrator.PublishOptions{
		SessionID: sessionID,
		TTL:       secondsToDuration(ttl),
		Burn:      burn,
		PIN:       pin,
		ShareZ32:  share,
		Yes:       yes,
	})
	if err != nil {
		return err
	}

	ui.PrintSuccess(o.Stdout, "Published. Pick it up with:")
	fmt.Fprintln(o.Stdout, "  "+result.PickupCommand)
	if wantQR && !qr.RenderBestEffort(o.Stdout, result.PickupCommand) {
		ui.PrintWarn(o.Stderr, "no QR renderer available; showing the command above instead")
	}
	return nil
}
