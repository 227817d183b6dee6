package cli

import (
	"github.com/spf13/cobra"

	"github.com/johnzilla/cclink/internal/orchestrator"
	"github.com/johnzilla/cclink/internal/ui"
)

var revokeYes bool

var revokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke this identity's currently published record",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRevoke,
}

func init() {
	revokeCmd.Flags().BoolVar(&revokeYes, "yes", false, "skip the revoke confirmation")
	revokeCmd.Flags().Bool("all", false, "accepted for compatibility; cclink tracks a single record per identity")
}

func runRevoke(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator()
	if err != nil {
		return err
	}

	if err := o.Revoke(orchestrator.RevokeOptions{Yes: revokeYes}); err != nil {
		return err
	}

	ui.PrintSuccess(o.Stdout, "revoked")
	return nil
}
