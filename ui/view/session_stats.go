package view

import (
	"fmt"
	"time"

	"github.com/soocke/autofish-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// RunTimeStats shows the current run and total run time.
type RunTimeStats interface {
	SetRun(d time.Duration)
	SetTotal(d time.Duration)
}

type runTimeStats struct {
	runLbl   *TLabelWidget
	totalLbl *TLabelWidget
}

// NewRunTimeStats grids the run label at (row, startCol) and the total
// label right of it inside parent.
func NewRunTimeStats(parent *TFrameWidget, row, startCol int) RunTimeStats {
	s := &runTimeStats{
		runLbl:   TLabel(Style(theme.StyleInfoLabel), Width(14), Txt("Run: 00:00")),
		totalLbl: TLabel(Style(theme.StyleInfoLabel), Width(14), Txt("Total: 00:00")),
	}
	Grid(s.runLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	return s
}

func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (s *runTimeStats) SetRun(d time.Duration) {
	if s == nil || s.runLbl == nil {
		return
	}
	s.runLbl.Configure(Txt("Run: " + clock(d)))
}

func (s *runTimeStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	s.totalLbl.Configure(Txt("Total: " + clock(d)))
}
