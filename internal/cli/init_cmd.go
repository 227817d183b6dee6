package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnzilla/cclink/internal/orchestrator"
	"github.com/johnzilla/cclink/internal/ui"
)

var initImportPath string
var initYes bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate or import a cclink identity",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initImportPath, "import", "", "path to a 64-character hex seed, or - for stdin")
	initCmd.Flags().BoolVar(&initYes, "yes", false, "overwrite an existing key without prompting")
}

func runInit(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator()
	if err != nil {
		return err
	}

	importHex := ""
	if initImportPath != "" {
		raw, err := readImportSeed(initImportPath)
		if err != nil {
			return err
		}
		importHex = raw
	}

	result, err := o.Init(orchestrator.InitOptions{ImportHex: importHex, Yes: initYes})
	if err != nil {
		return err
	}

	ui.PrintSuccess(o.Stdout, "Identity ready.")
	fmt.Fprintf(o.Stdout, "  public key:  %s\n", result.PublicKeyZ32)
	fmt.Fprintf(o.Stdout, "  fingerprint: %s\n", result.Fingerprint)
	fmt.Fprintf(o.Stdout, "  key file:    %s\n", result.KeyPath)
	return nil
}

func readImportSeed(path string) (string, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading import seed: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
