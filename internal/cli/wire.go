package cli

import (
	"os"

	"github.com/johnzilla/cclink/internal/config"
	"github.com/johnzilla/cclink/internal/discovery"
	"github.com/johnzilla/cclink/internal/keystore"
	"github.com/johnzilla/cclink/internal/launcher"
	"github.com/johnzilla/cclink/internal/metrics"
	"github.com/johnzilla/cclink/internal/orchestrator"
	"github.com/johnzilla/cclink/internal/transport"
)

// sharedStore backs every orchestrator built by this process. The
// retrieval pack carries no Mainline-DHT client library, so production
// publish/resolve/revoke here runs against an in-process store: real
// cross-machine handoff needs a PKARR-speaking transport.Store swapped in
// at this one seam (see DESIGN.md).
var sharedStore = transport.NewInMemoryStore()

func newOrchestrator() (*orchestrator.Orchestrator, error) {
	keys, err := keystore.New()
	if err != nil {
		return nil, err
	}

	cfgPath, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	client := transport.NewClient(sharedStore)

	transcriptsDir := cfg.TranscriptsDir
	if transcriptsDir == "" {
		dir, err := discovery.DefaultTranscriptsDir()
		if err != nil {
			return nil, err
		}
		transcriptsDir = dir
	}

	discoverFunc := func(cwdFilter string) ([]orchestrator.SessionCandidate, error) {
		sessions, err := discovery.Discover(transcriptsDir, cwdFilter)
		if err != nil {
			return nil, err
		}
		candidates := make([]orchestrator.SessionCandidate, len(sessions))
		for i, s := range sessions {
			candidates[i] = orchestrator.SessionCandidate{
				SessionID:   s.SessionID,
				ProjectPath: s.ProjectPath,
				Mtime:       s.Mtime,
			}
		}
		return candidates, nil
	}

	o := orchestrator.New(keys, client, discoverFunc, launcher.New(cfg.AgentBinary), NewTerminalPrompter(), os.Stdout, os.Stderr)
	o.Config = cfg
	if cfg.MetricsEnabled {
		o.Metrics = metrics.Default()
	} else {
		o.Metrics = metrics.Disabled()
	}
	return o, nil
}
