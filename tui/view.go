package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"birdroyale/protocol"
)

// A terminal cell covers cellW x cellH world units; cells are roughly twice
// as tall as they are wide.
const (
	cellW   = 10.0
	cellH   = 20.0
	hudRows = 2
)

var (
	styleDefault  = tcell.StyleDefault
	styleVoid     = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleStorm    = tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	styleWater    = tcell.StyleDefault.Foreground(tcell.ColorBlue).Background(tcell.ColorNavy)
	styleHeal     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleBling    = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	styleEnemy    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleBoss     = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleHazard   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleHUDAlert = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed)
)

// ViewSize is the world-unit viewport sent in hello for a terminal of
// cols x rows; the bottom rows are kept for the HUD.
func ViewSize(cols, rows int) (float64, float64) {
	mapRows := max(rows-hudRows, 1)
	return float64(cols) * cellW, float64(mapRows) * cellH
}

// project maps a world position to a screen cell using the snapshot camera.
func project(st *protocol.State, wx, wy float64) (int, int) {
	sx := wx + st.HalfWorld + st.Camera.X
	sy := wy + st.HalfWorld + st.Camera.Y
	return int(math.Floor(sx / cellW)), int(math.Floor(sy / cellH))
}

// unproject returns the world position at the center of a screen cell.
func unproject(st *protocol.State, col, row int) (float64, float64) {
	sx := (float64(col) + 0.5) * cellW
	sy := (float64(row) + 0.5) * cellH
	return sx - st.HalfWorld - st.Camera.X, sy - st.HalfWorld - st.Camera.Y
}

// Draw renders one snapshot. role is shown in the HUD.
func Draw(screen tcell.Screen, st *protocol.State, role string) {
	screen.Clear()
	cols, rows := screen.Size()
	mapRows := rows - hudRows

	put := func(wx, wy float64, r rune, style tcell.Style) {
		c, row := project(st, wx, wy)
		if c >= 0 && c < cols && row >= 0 && row < mapRows {
			screen.SetContent(c, row, r, nil, style)
		}
	}

	for row := 0; row < mapRows; row++ {
		for c := 0; c < cols; c++ {
			wx, wy := unproject(st, c, row)
			switch {
			case math.Abs(wx) > st.HalfWorld || math.Abs(wy) > st.HalfWorld:
				screen.SetContent(c, row, ' ', nil, styleVoid)
			case math.Hypot(wx-st.Zone.X, wy-st.Zone.Y) > st.Zone.Radius:
				screen.SetContent(c, row, '░', nil, styleStorm)
			}
		}
	}

	for _, o := range st.Obstacles {
		c0, r0 := project(st, o.X, o.Y)
		c1, r1 := project(st, o.X+o.W, o.Y+o.H)
		for row := max(r0, 0); row <= min(r1, mapRows-1); row++ {
			for c := max(c0, 0); c <= min(c1, cols-1); c++ {
				screen.SetContent(c, row, '~', nil, styleWater)
			}
		}
	}
	for _, h := range st.HealPads {
		put(h.X, h.Y, '+', styleHeal)
	}
	for _, b := range st.Collectibles {
		put(b.X, b.Y, '$', styleBling)
	}
	for _, e := range st.Entities {
		switch e.Kind {
		case "boss":
			put(e.X, e.Y, 'C', styleBoss)
		case "danger":
			put(e.X, e.Y, '!', styleHazard)
		default:
			put(e.X, e.Y, 'e', styleEnemy)
		}
	}

	glyph := '@'
	switch {
	case !st.Player.Alive:
		glyph = 'x'
	case st.Player.Flying:
		glyph = '^'
	}
	put(st.Player.X, st.Player.Y, glyph, stylePlayer)

	drawHUD(screen, st, role, cols, mapRows)
	screen.Show()
}

func drawHUD(screen tcell.Screen, st *protocol.State, role string, cols, top int) {
	p := st.Player
	blings := p.Collected + len(st.Collectibles)
	status := fmt.Sprintf(" HP %3.0f  ST %3.0f  alive %d  blings %d/%d  zone %s  %s ",
		p.Health, p.Stamina, st.Alive, p.Collected, blings, st.Zone.Status, role)
	style := styleHUD
	if p.Alive && math.Hypot(p.X-st.Zone.X, p.Y-st.Zone.Y) > st.Zone.Radius {
		status += " OUTSIDE ZONE "
		style = styleHUDAlert
	}
	drawLine(screen, 0, top, cols, status, style)
	drawLine(screen, 0, top+1, cols, " arrows/wasd move  f fly  space attack  q quit", styleDefault)
}

// drawLine writes text from (x, y), padding with the style to width.
func drawLine(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	i := 0
	for _, r := range text {
		if i >= width {
			return
		}
		screen.SetContent(x+i, y, r, nil, style)
		i++
	}
	for ; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
}
