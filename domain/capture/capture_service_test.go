package capture

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestService_PublishesLatestFrame(t *testing.T) {
	var n atomic.Int32
	svc := NewService(nil, GrabberFunc(func() (*image.RGBA, error) {
		n.Add(1)
		return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
	}), 200)

	if _, err := svc.Frame(); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("expected ErrNoFrame before start, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	waitFor(t, time.Second, func() bool { return svc.LatestFrame().Sequence >= 3 })
	if !svc.Stats().Running {
		t.Fatalf("expected running service")
	}
	if img, err := svc.Frame(); err != nil || img == nil {
		t.Fatalf("expected frame, got %v", err)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run returned %v", err)
	}
	if svc.Stats().Running {
		t.Fatalf("expected stopped service")
	}
	st := svc.Stats()
	if st.Captures < 3 || st.Sequence != st.Captures {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestService_GrabErrorKeepsPreviousFrame(t *testing.T) {
	var calls atomic.Int32
	first := image.NewRGBA(image.Rect(0, 0, 2, 2))
	svc := NewService(nil, GrabberFunc(func() (*image.RGBA, error) {
		if calls.Add(1) == 1 {
			return first, nil
		}
		return nil, errors.New("device lost")
	}), 500)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Run(ctx)

	waitFor(t, time.Second, func() bool { return svc.Stats().Skipped >= 2 })
	if svc.LatestFrame().Image != first {
		t.Fatalf("expected first frame to remain latest")
	}
}

func TestService_ConcurrentReaders(t *testing.T) {
	svc := NewService(nil, GrabberFunc(func() (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
	}), 1000)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Run(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				snap := svc.LatestFrame()
				if snap.Image != nil && snap.Image.Bounds().Dx() != 8 {
					t.Errorf("torn frame %v", snap.Image.Bounds())
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewGrabber_UnknownBackend(t *testing.T) {
	if _, err := NewGrabber("dxcam", 0); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
