package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ballmaze/internal/core"
	"github.com/vovakirdan/ballmaze/internal/maze"
)

const (
	title      = "B A L L   M A Z E"
	floorRune  = '█'
	ballRune   = '●'
	textMargin = 4
)

// Projector maps world pixels onto terminal cells.
type Projector struct {
	CellW int
	CellH int
}

// Col returns the cell column containing world x.
func (p Projector) Col(x int) int {
	return floorDiv(x, p.CellW)
}

// Row returns the cell row containing world y.
func (p Projector) Row(y int) int {
	return floorDiv(y, p.CellH)
}

// centerX returns the world x of the center of column c.
func (p Projector) centerX(c int) int {
	return c*p.CellW + p.CellW/2
}

// centerY returns the world y of the center of row r.
func (p Projector) centerY(r int) int {
	return r*p.CellH + p.CellH/2
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// frame is everything one draw handler needs.
type frame struct {
	snap   maze.Snapshot
	proj   Projector
	floors int // Tower height, shown on the title screen
}

type drawFunc func(scr *core.Screen, f frame)

var drawers = map[Mode]drawFunc{
	ModeStart:  drawStart,
	ModeInGame: drawInGame,
	ModeLose:   drawLose,
	ModeWin:    drawWin,
}

// Draw clears the screen and draws the snapshot with the handler of its
// mode. Returns the mode drawn.
func Draw(scr *core.Screen, snap maze.Snapshot, proj Projector, floors int) Mode {
	mode := ModeOf(snap)
	scr.Clear()
	drawers[mode](scr, frame{snap: snap, proj: proj, floors: floors})
	return mode
}

func drawStart(scr *core.Screen, f frame) {
	h := scr.Height()
	scr.DrawTextCentered(h/6, title, core.ColorBrightYellow)
	scr.DrawTextCentered(h/3, "Objective", core.ColorDefault)

	objective := fmt.Sprintf("Tilt left and right to guide the ball through the gap in each floor. "+
		"Touch a floor and the run is over. Pass all %d floors to win.", f.floors)
	for i, line := range wrap(objective, scr.Width()-2*textMargin) {
		scr.DrawTextCentered(h/3+2+i, line, core.ColorDefault)
	}

	scr.DrawTextCentered(h-3, "press space to start", core.ColorBrightWhite)
}

func drawInGame(scr *core.Screen, f frame) {
	for _, fl := range f.snap.Floors {
		drawFloor(scr, f.proj, fl)
	}
	drawBall(scr, f.proj, f.snap.BallX, f.snap.BallScreenY(), f.snap.BallRadius)

	scr.DrawText(1, scr.Height()-1, fmt.Sprintf(" %d ", f.snap.Score), core.ColorBrightWhite)
}

func drawLose(scr *core.Screen, f frame) {
	drawGameOver(scr, f, "YOU LOST")
}

func drawWin(scr *core.Screen, f frame) {
	drawGameOver(scr, f, "YOU WON!")
}

func drawGameOver(scr *core.Screen, f frame, verdict string) {
	h := scr.Height()
	scr.DrawTextCentered(h/6, title, core.ColorBrightYellow)
	scr.DrawTextCentered(h/3, verdict, core.ColorBrightWhite)
	scr.DrawTextCentered(h/3+2, fmt.Sprintf("Score: %d/%d", f.snap.Score, f.snap.FloorCount), core.ColorDefault)
	scr.DrawTextCentered(h/3+3, fmt.Sprintf("%d ticks, seed %d", f.snap.Tick, f.snap.Seed), core.ColorGray)
	scr.DrawTextCentered(h-3, "press space to play again", core.ColorBrightWhite)
}

// drawFloor fills every cell whose center lies on a solid part of the floor.
func drawFloor(scr *core.Screen, p Projector, fl maze.FloorView) {
	top := p.Row(fl.Top)
	bottom := p.Row(fl.Top + fl.Thickness - 1)
	gapEnd := fl.GapOffset + fl.GapWidth

	for r := top; r <= bottom; r++ {
		for c, w := 0, scr.Width(); c < w; c++ {
			x := p.centerX(c)
			if x < fl.GapOffset || x >= gapEnd {
				scr.SetColored(c, r, floorRune, fl.Color)
			}
		}
	}
}

// drawBall fills every cell whose center lies inside the ball. The cell
// holding the ball center is always drawn.
func drawBall(scr *core.Screen, p Projector, cx, cy, radius int) {
	r2 := radius * radius
	for row := p.Row(cy - radius); row <= p.Row(cy+radius); row++ {
		for col := p.Col(cx - radius); col <= p.Col(cx+radius); col++ {
			dx := p.centerX(col) - cx
			dy := p.centerY(row) - cy
			if dx*dx+dy*dy <= r2 {
				scr.SetColored(col, row, ballRune, core.ColorDefault)
			}
		}
	}
	scr.SetColored(p.Col(cx), p.Row(cy), ballRune, core.ColorDefault)
}

// wrap breaks text into lines no wider than width.
func wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}
