package qr

import (
	"bytes"
	"testing"
)

func TestNoOpRendererNeverErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := (NoOpRenderer{}).Render(&buf, "pubky1examplez32key"); err != nil {
		t.Errorf("NoOpRenderer.Render returned error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("NoOpRenderer must not write anything, wrote %q", buf.String())
	}
}

func TestRenderBestEffortReportsNoRenderingAvailable(t *testing.T) {
	var buf bytes.Buffer
	if RenderBestEffort(&buf, "pubky1examplez32key") {
		t.Error("expected RenderBestEffort to report false with the default no-op renderer")
	}
}
