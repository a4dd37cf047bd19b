package hotkey

import (
	"sync"
	"testing"
	"time"

	"github.com/soocke/autofish-go/domain/interaction"
)

func TestEdge_FiresOncePerPress(t *testing.T) {
	var e edge
	levels := []bool{false, true, true, true, false, false, true, false}
	presses := 0
	for _, l := range levels {
		if e.update(l) {
			presses++
		}
	}
	if presses != 2 {
		t.Fatalf("expected 2 presses, got %d", presses)
	}
}

type toneRecorder struct {
	mu    sync.Mutex
	tones []int
	wg    sync.WaitGroup
}

func (r *toneRecorder) beep(freq int, _ time.Duration) {
	r.mu.Lock()
	r.tones = append(r.tones, freq)
	r.mu.Unlock()
	r.wg.Done()
}

func TestToggler_AlternatesAndBeeps(t *testing.T) {
	state := interaction.NewState()
	rec := &toneRecorder{}
	tg := NewToggler(nil, state, "F8", rec.beep)

	rec.wg.Add(1)
	if tg.Toggle() {
		t.Fatalf("first toggle must resume a fresh state")
	}
	rec.wg.Wait()
	rec.wg.Add(1)
	if !tg.Toggle() {
		t.Fatalf("second toggle must pause")
	}
	rec.wg.Wait()

	if len(rec.tones) != 2 || rec.tones[0] != resumeTone || rec.tones[1] != pauseTone {
		t.Fatalf("unexpected tones %v", rec.tones)
	}
	if !state.Paused() {
		t.Fatalf("state must be paused")
	}
}
