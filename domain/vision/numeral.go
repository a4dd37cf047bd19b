package vision

import (
	"fmt"
	"log/slog"
	"strings"
)

// Score is the best match score of one numeral template.
type Score struct {
	Numeral int
	Value   float64
}

// Scores is a per-template score list in template order.
type Scores []Score

func (s Scores) String() string {
	parts := make([]string, len(s))
	for i, sc := range s {
		parts[i] = fmt.Sprintf("n%d=%.3f", sc.Numeral, sc.Value)
	}
	return strings.Join(parts, " ")
}

// LogValue renders the scores as a single compact attribute.
func (s Scores) LogValue() slog.Value { return slog.StringValue(s.String()) }

// Select applies the two-tier policy: the best score at or above conf wins;
// otherwise the overall best wins if it reaches floor. ok is false when
// nothing qualifies.
func (s Scores) Select(conf, floor float64) (best Score, ok bool) {
	best = Score{Value: -1}
	for _, sc := range s {
		if sc.Value >= conf && sc.Value > best.Value {
			best, ok = sc, true
		}
	}
	if ok {
		return best, true
	}
	for i, sc := range s {
		if i == 0 || sc.Value > best.Value {
			best = sc
		}
	}
	if len(s) > 0 && best.Value >= floor {
		return best, true
	}
	return Score{}, false
}

// NumeralMemory keeps the last recognized numeral across frames where
// recognition fails. Zero means nothing has been recognized.
// Not safe for concurrent use.
type NumeralMemory struct {
	conf, floor  float64
	value        int
	resetPending bool
	logger       *slog.Logger
}

// NewNumeralMemory returns a memory using the given confidence and floor.
func NewNumeralMemory(conf, floor float64, logger *slog.Logger) *NumeralMemory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &NumeralMemory{conf: conf, floor: floor, logger: logger}
}

// Value returns the remembered numeral.
func (m *NumeralMemory) Value() int { return m.value }

// ScheduleReset clears the remembered numeral at the start of the next Observe.
func (m *NumeralMemory) ScheduleReset() { m.resetPending = true }

// Clear forgets the numeral and any pending reset.
func (m *NumeralMemory) Clear() {
	m.value = 0
	m.resetPending = false
}

// Observe folds one frame's scores into the memory and returns the numeral
// now remembered. A frame with no qualifying score leaves the value as is.
func (m *NumeralMemory) Observe(scores Scores) int {
	best, ok := scores.Select(m.conf, m.floor)
	if m.resetPending {
		m.value = 0
		m.resetPending = false
	}
	if ok {
		if m.value != best.Numeral {
			m.logger.Info("numeral detected", "numeral", best.Numeral, "confidence", best.Value, "scores", scores)
		}
		m.value = best.Numeral
		return m.value
	}
	if m.value != 0 {
		m.logger.Warn("numeral not detected, keeping previous", "previous", m.value, "scores", scores)
	}
	return m.value
}
