package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	inner := fmt.Errorf("exit status 1")
	err := Wrap(ErrExternalTool, "transcode", "run ffmpeg", "Transcoder failed", inner)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatal("marker not preserved")
	}
	if !errors.Is(err, inner) {
		t.Fatal("inner error not preserved")
	}
	if !strings.Contains(err.Error(), "transcode: run ffmpeg: Transcoder failed") {
		t.Fatalf("detail missing: %v", err)
	}
}

func TestWrapNilMarkerDefaultsTransient(t *testing.T) {
	err := Wrap(nil, "organize", "copy", "copy failed", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatal("nil marker should default to transient")
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(Wrap(ErrConfiguration, "preflight", "check target", "target unwritable", nil)) {
		t.Fatal("configuration errors are fatal")
	}
	if IsFatal(Wrap(ErrExternalTool, "transcode", "run ffmpeg", "boom", nil)) {
		t.Fatal("external tool errors are per-item")
	}
}
