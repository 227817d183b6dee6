package orchestrator

import "time"

// transportBudget bounds every DHT operation's retry loop: initial 2s,
// multiplier 2, max interval 8s, 30s total elapsed.
const transportBudget = 30 * time.Second
