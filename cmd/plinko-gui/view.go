package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/plinko/plinko"
)

var (
	backgroundColor = color.RGBA{245, 245, 240, 255}
	pegColor        = color.RGBA{90, 90, 100, 255}
	ballColor       = color.RGBA{230, 120, 40, 255}
	cupColor        = color.RGBA{100, 140, 200, 255}
)

// boardView keeps the last frame handed to it by the loop and draws it.
// It implements plinko.Renderer.
type boardView struct {
	board     plinko.Board
	occupancy []bool
	cups      []bool
}

func newBoardView(board plinko.Board) *boardView {
	return &boardView{
		board:     board,
		occupancy: make([]bool, board.TotalSpaces()),
		cups:      make([]bool, board.CupCount()),
	}
}

// Render copies the frame; the loop reuses its buffers.
func (v *boardView) Render(board plinko.Board, occupancy, cups []bool) error {
	copy(v.occupancy, occupancy)
	copy(v.cups, cups)
	return nil
}

// layout returns the pixel pitch between pegs and the top-left origin that
// centres the board in a w by h screen.
func (v *boardView) layout(w, h int) (pitch, ox, oy float32) {
	rows := float32(v.board.Rows())
	pitch = float32(h) * 0.8 / (rows + 2)
	if byW := float32(w) * 0.5 / rows; byW < pitch {
		pitch = byW
	}
	ox = float32(w) / 2
	oy = (float32(h) - pitch*(rows+2)) / 2
	return pitch, ox, oy
}

// pegPos returns the centre of peg p (0-indexed) in peg row r (1-indexed).
func pegPos(r, p int, pitch, ox, oy float32) (x, y float32) {
	x = ox + (float32(p)-float32(r-1)/2)*pitch
	y = oy + float32(r-1)*pitch
	return x, y
}

func (v *boardView) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	b := screen.Bounds()
	pitch, ox, oy := v.layout(b.Dx(), b.Dy())
	pegRadius := pitch / 10
	ballRadius := pitch / 4

	i := 0
	for r := 1; r <= v.board.Rows(); r++ {
		for p := 0; p < r; p++ {
			x, y := pegPos(r, p, pitch, ox, oy)
			vector.DrawFilledCircle(screen, x, y, pegRadius, pegColor, true)

			// the space right of peg p holds a ball
			if p < r-1 {
				if v.occupancy[i] {
					vector.DrawFilledCircle(screen, x+pitch/2, y, ballRadius, ballColor, true)
				}
				i++
			}
		}
	}

	// cups sit under the spaces of the bottom peg row
	r := v.board.Rows()
	for cup, full := range v.cups {
		x, y := pegPos(r, cup, pitch, ox, oy)
		cx := x + pitch*0.1
		cy := y + pitch*0.6
		vector.StrokeRect(screen, cx, cy, pitch*0.8, pitch, 2, cupColor, true)
		if full {
			vector.DrawFilledCircle(screen, cx+pitch*0.4, cy+pitch*0.7, ballRadius, ballColor, true)
		}
	}

	ebitenutil.DebugPrint(screen, "Any key drops a ball, Tab toggles fast mode, Enter empties the cups, Escape quits.")
}
