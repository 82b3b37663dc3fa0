package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/quantumbox/internal/game"
	"github.com/robalobadob/quantumbox/internal/i18n"
	"github.com/robalobadob/quantumbox/internal/simulation"
)

const (
	padWidth = 7
	padGap   = 2
	barWidth = 20
)

var (
	styleBase  = tcell.StyleDefault
	styleTitle = styleBase.Bold(true)
	styleDim   = styleBase.Foreground(tcell.ColorGray)
	styleAlive = styleBase.Foreground(tcell.ColorLime).Bold(true)
	styleDead  = styleBase.Foreground(tcell.ColorRed).Bold(true)
)

// padColors holds the idle and lit background for each palette symbol.
var padColors = map[game.Symbol][2]tcell.Color{
	game.Blue:   {tcell.ColorNavy, tcell.ColorBlue},
	game.Red:    {tcell.ColorMaroon, tcell.ColorRed},
	game.Green:  {tcell.ColorDarkGreen, tcell.ColorLime},
	game.Yellow: {tcell.ColorOlive, tcell.ColorYellow},
}

func padStyle(sym game.Symbol, lit bool) tcell.Style {
	c, ok := padColors[sym]
	if !ok {
		c = [2]tcell.Color{tcell.ColorDimGray, tcell.ColorWhite}
	}
	if lit {
		return styleBase.Background(c[1]).Foreground(tcell.ColorBlack).Bold(true)
	}
	return styleBase.Background(c[0]).Foreground(tcell.ColorSilver)
}

func draw(s tcell.Screen, p *i18n.Printer, v simulation.View, alphabet int, best time.Duration, hasBest bool) {
	s.Clear()
	w, h := s.Size()

	center(s, w, 0, styleTitle, p.Text(v.HeaderKey))
	center(s, w, 1, styleDim, fmt.Sprintf("%s %d", p.Text("ui.round"), v.Round))
	center(s, w, 3, boxStyle(v), boxArt(v))

	switch {
	case v.Stage == simulation.StagePreSimulation:
		center(s, w, 5, styleTitle, "[ "+p.Text("ui.start")+" ]")
	case v.ShowGame:
		drawChallenge(s, w, p, v.Challenge, alphabet)
	case v.Result != nil:
		drawResult(s, w, p, v, best, hasBest)
	}

	if h > 0 {
		center(s, w, h-1, styleDim, p.Text("ui.keys"))
	}
	s.Show()
}

func drawChallenge(s tcell.Screen, w int, p *i18n.Printer, snap game.Snapshot, alphabet int) {
	center(s, w, 5, styleBase, p.Prompt(snap.Prompt))

	total := alphabet*padWidth + (alphabet-1)*padGap
	x := max((w-total)/2, 0)
	for i := 1; i <= alphabet; i++ {
		sym := game.Symbol(i)
		st := padStyle(sym, snap.Highlight == sym)
		label := fmt.Sprintf("%*s", -padWidth, fmt.Sprintf("   %d", i))
		for row := 7; row <= 9; row++ {
			text := strings.Repeat(" ", padWidth)
			if row == 8 {
				text = label
			}
			put(s, x, row, st, text)
		}
		x += padWidth + padGap
	}

	center(s, w, 11, styleBase, dots(snap.Cursor, snap.Length))
	center(s, w, 13, styleBase, fmt.Sprintf("%s [%s] %ss", p.Text("ui.decay"), bar(snap.Percentage()), snap.Seconds()))
}

func drawResult(s tcell.Screen, w int, p *i18n.Printer, v simulation.View, best time.Duration, hasBest bool) {
	st := styleDead
	if v.Fate == simulation.FateAlive {
		st = styleAlive
	}
	center(s, w, 5, st, p.Text(v.Result.TitleKey))
	center(s, w, 6, styleBase, p.Text(v.Result.TextKey))
	row := 8
	if v.Fate == simulation.FateAlive {
		center(s, w, row, styleBase, fmt.Sprintf("%s %s", p.Text("ui.your_time"), seconds(v.SolveTime)))
		row++
	}
	if hasBest {
		center(s, w, row, styleDim, fmt.Sprintf("%s %s", p.Text("ui.best_time"), seconds(best)))
		row++
	}
	center(s, w, row+1, styleTitle, "[ "+p.Text(v.Result.ButtonKey)+" ]")
}

func boxArt(v simulation.View) string {
	switch {
	case v.Stage == simulation.StagePreSimulation:
		return "|     ?     |"
	case v.Fate == simulation.FateAlive:
		return "|   =^.^=   |"
	case v.Fate == simulation.FateDead:
		return "|    x_x    |"
	}
	return "|###########|"
}

func boxStyle(v simulation.View) tcell.Style {
	switch v.Fate {
	case simulation.FateAlive:
		return styleAlive
	case simulation.FateDead:
		return styleDead
	}
	return styleBase
}

// dots marks entered symbols with a filled circle.
func dots(cursor, length int) string {
	cells := make([]string, length)
	for i := range cells {
		if i < cursor {
			cells[i] = "●"
		} else {
			cells[i] = "○"
		}
	}
	return strings.Join(cells, " ")
}

// bar renders pct (0..100) as a fixed-width gauge.
func bar(pct float64) string {
	n := int(math.Round(pct / 100 * barWidth))
	n = min(max(n, 0), barWidth)
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func center(s tcell.Screen, w, y int, st tcell.Style, text string) {
	n := len([]rune(text))
	put(s, max((w-n)/2, 0), y, st, text)
}

func put(s tcell.Screen, x, y int, st tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}
