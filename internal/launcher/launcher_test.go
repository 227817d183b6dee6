package launcher

import "testing"

func TestLaunchMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if err := Launch("some-session-id"); err == nil {
		t.Fatal("expected error when the agent binary is not in PATH")
	}
}
