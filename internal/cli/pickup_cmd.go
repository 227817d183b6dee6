package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
	"github.com/johnzilla/cclink/internal/orchestrator"
	"github.com/johnzilla/cclink/internal/qr"
	"github.com/johnzilla/cclink/internal/ui"
)

var pickupYes bool
var pickupQR bool

var pickupCmd = &cobra.Command{
	Use:   "pickup [pubkey]",
	Short: "Resolve and resume a published session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPickup,
}

func init() {
	pickupCmd.Flags().BoolVar(&pickupYes, "yes", false, "skip the resume confirmation")
	pickupCmd.Flags().BoolVar(&pickupQR, "qr", false, "render a QR code for the resolved pickup command")
}

func runPickup(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator()
	if err != nil {
		return err
	}

	publisherZ32 := ""
	if len(args) == 1 {
		publisherZ32 = args[0]
	} else {
		who, err := o.WhoAmI()
		if err != nil {
			return err
		}
		publisherZ32 = who.PublicKeyZ32
	}

	result, err := o.Pickup(orchestrator.PickupOptions{PublisherZ32: publisherZ32, Yes: pickupYes})
	if err != nil {
		if cclinkerrors.Is(err, cclinkerrors.ErrCannotDecryptOwnShare) {
			ui.PrintWarn(o.Stderr, "this record was shared with someone else; you cannot pick it up yourself")
			return nil
		}
		return err
	}

	if result.NotForMe {
		ui.PrintWarn(o.Stderr, "this record is not addressed to your identity")
		return nil
	}

	if pickupQR && !qr.RenderBestEffort(o.Stdout, result.SessionID) {
		ui.PrintWarn(o.Stderr, "no QR renderer available")
	}
	if result.RecordBurned {
		fmt.Fprintln(o.Stderr, "record revoked")
	}
	// On POSIX, a successful launch replaces this process image and
	// control never returns here; this line only prints on platforms
	// that spawn-and-wait instead.
	if result.Launched {
		ui.PrintSuccess(o.Stdout, "Session "+result.SessionID+" finished")
	}
	return nil
}
