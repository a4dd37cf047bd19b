package capture

import (
	"bytes"
	"testing"
)

func TestNewGrabber_PrimaryOnlyMonitorZero(t *testing.T) {
	if _, err := NewGrabber(BackendPrimary, 1); err == nil {
		t.Fatal("expected error for primary backend on monitor 1")
	}
}

func TestBGRAToRGBA(t *testing.T) {
	src := []byte{1, 2, 3, 0, 10, 20, 30, 99}
	dst := make([]byte, len(src))
	bgraToRGBA(dst, src)
	want := []byte{3, 2, 1, 0xFF, 30, 20, 10, 0xFF}
	if !bytes.Equal(dst, want) {
		t.Fatalf("got %v want %v", dst, want)
	}
}
