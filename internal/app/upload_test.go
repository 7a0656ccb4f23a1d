package app

import "testing"

func TestUploadIdleDoesNothing(t *testing.T) {
	var u uploadState
	if got := u.Decide(false); got != uploadNone {
		t.Errorf("idle frame = %v, want uploadNone", got)
	}
}

func TestUploadDirtyBasePushedOnce(t *testing.T) {
	var u uploadState
	u.MarkDirty()
	if got := u.Decide(false); got != uploadBase {
		t.Fatalf("dirty frame = %v, want uploadBase", got)
	}
	if got := u.Decide(false); got != uploadNone {
		t.Errorf("frame after upload = %v, want uploadNone", got)
	}
}

func TestUploadPointerReleaseRestoresBase(t *testing.T) {
	var u uploadState

	// Pointer enters on a clean buffer: displaced scratch every frame.
	for i := 0; i < 3; i++ {
		if got := u.Decide(true); got != uploadDisplaced {
			t.Fatalf("pointer frame %d = %v, want uploadDisplaced", i, got)
		}
	}

	// The frame the pointer leaves, the base buffer must go back up even
	// though nothing marked it dirty.
	if got := u.Decide(false); got != uploadBase {
		t.Fatalf("release frame = %v, want uploadBase", got)
	}
	if got := u.Decide(false); got != uploadNone {
		t.Errorf("frame after release = %v, want uploadNone", got)
	}
}

func TestUploadPointerAbsorbsDirtyFlag(t *testing.T) {
	var u uploadState
	u.MarkDirty()

	// A displaced upload carries the full buffer, so the dirty flag is
	// satisfied by it.
	if got := u.Decide(true); got != uploadDisplaced {
		t.Fatalf("dirty pointer frame = %v, want uploadDisplaced", got)
	}

	// Release still restores the base exactly once.
	if got := u.Decide(false); got != uploadBase {
		t.Fatalf("release frame = %v, want uploadBase", got)
	}
	if got := u.Decide(false); got != uploadNone {
		t.Errorf("settled frame = %v, want uploadNone", got)
	}
}
