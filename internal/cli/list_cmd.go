package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnzilla/cclink/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show this identity's currently published record, if any",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator()
	if err != nil {
		return err
	}

	item, err := o.List()
	if err != nil {
		return err
	}

	if !item.Exists {
		fmt.Fprintln(o.Stdout, "no active handoff record")
		return nil
	}

	burn := ""
	if item.Burn {
		burn = "  burn"
	}
	recipient := ""
	if item.RecipientPrefix != "" {
		recipient = "  -> " + item.RecipientPrefix
	}
	fmt.Fprintf(o.Stdout, "%-30s  age %-8s  ttl-left %-8s%s%s\n",
		item.ProjectDisplay, ui.FormatDuration(item.Age), ui.FormatDuration(item.TTLRemaining), burn, recipient)
	return nil
}
