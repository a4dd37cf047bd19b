// Package box tracks the three numbered targets of the box minigame by color
// and picks which one to click next.
package box

import (
	"image"
	"log/slog"

	"github.com/soocke/autofish-go/domain/geom"
	"github.com/soocke/autofish-go/domain/vision"
)

// Slots is the number of numbered targets.
const Slots = 3

// Record is one tracked target. Its identity is Color.
type Record struct {
	Center  image.Point     // region-local
	Color   geom.RGB
	Bounds  image.Rectangle // region-local
	Updated uint64          // cycle of the last write
}

// Options configures color classification.
type Options struct {
	Background geom.ColorRange // digit boxes in this range keep their cached color
	Success    geom.RGB        // exact color of a succeeded target
}

// Decision is the outcome of resolving one cycle's shape candidates.
type Decision struct {
	Successes int
	Live      int         // candidates that are not yet succeeded
	Slot      int         // 1-based slot selected by Successes, 0 when none
	Target    image.Point // region-local center of the selected record
	Click     bool        // Target is valid and should be clicked
}

// Tracker holds one record per slot. Records are never evicted; they are only
// overwritten by a newer digit detection or refreshed by a color match.
// Not safe for concurrent use.
type Tracker struct {
	opts   Options
	slots  [Slots]*Record
	logger *slog.Logger
}

// NewTracker returns an empty tracker.
func NewTracker(logger *slog.Logger, opts Options) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{opts: opts, logger: logger}
}

// Record returns a copy of the record in 1-based slot, if any.
func (t *Tracker) Record(slot int) (Record, bool) {
	if slot < 1 || slot > Slots || t.slots[slot-1] == nil {
		return Record{}, false
	}
	return *t.slots[slot-1], true
}

func center(r image.Rectangle) image.Point {
	return r.Min.Add(image.Pt(r.Dx()/2, r.Dy()/2))
}

// UpdateDigits writes one record per digit detection, in order, so a later
// detection of the same digit overwrites an earlier one. region is the frame
// the detection boxes are relative to.
func (t *Tracker) UpdateDigits(cycle uint64, region *image.RGBA, dets []vision.Detection) {
	for _, d := range dets {
		if d.Digit < 1 || d.Digit > Slots {
			continue
		}
		c := geom.DominantColor(region, d.Box)
		if cached := t.slots[d.Digit-1]; cached != nil && t.opts.Background.Contains(c) {
			c = cached.Color
		}
		t.slots[d.Digit-1] = &Record{Center: center(d.Box), Color: c, Bounds: d.Box, Updated: cycle}
	}
}

func (t *Tracker) match(c geom.RGB) *Record {
	for _, r := range t.slots {
		if r != nil && r.Color == c {
			return r
		}
	}
	return nil
}

// Resolve classifies each shape candidate by its dominant color, refreshes
// the position of records whose color recurs and selects the slot to click:
// the n-th success advances the target to slot n+1.
func (t *Tracker) Resolve(cycle uint64, region *image.RGBA, shapes []image.Rectangle) Decision {
	var d Decision
	for _, s := range shapes {
		c := geom.DominantColor(region, s)
		if c == t.opts.Success {
			d.Successes++
			continue
		}
		d.Live++
		if r := t.match(c); r != nil {
			r.Center = center(s)
			r.Bounds = s
			r.Updated = cycle
		}
	}
	if d.Live == 0 {
		return d
	}
	d.Slot = d.Successes + 1
	if r, ok := t.Record(d.Slot); ok {
		d.Target = r.Center
		d.Click = true
	} else {
		t.logger.Debug("no record for target slot", "slot", d.Slot, "successes", d.Successes)
	}
	return d
}
