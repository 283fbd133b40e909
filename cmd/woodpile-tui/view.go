package main

import (
	"fmt"
	"math"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/api"
	"github.com/gdamore/tcell/v2"
)

const (
	charsPerCell = 6 // ширина клетки решетки в символах
	linesPerRow  = 2
	pileTop      = 3 // строка экрана, с которой рисуется куча
	maxLogLines  = 5
)

var (
	styleDefault = tcell.StyleDefault
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGround  = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleAlert   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

var riskStyles = map[string]tcell.Style{
	"NONE":   tcell.StyleDefault.Foreground(tcell.ColorGreen),
	"LOW":    tcell.StyleDefault.Foreground(tcell.ColorYellowGreen),
	"MEDIUM": tcell.StyleDefault.Foreground(tcell.ColorOrange),
	"HIGH":   tcell.StyleDefault.Foreground(tcell.ColorRed),
}

// Подсветка предсказания важнее собственного риска полена
var predictionStyles = map[string]tcell.Style{
	"WILL_COLLAPSE": tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed),
	"HIGH_RISK":     tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	"MEDIUM_RISK":   tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true),
	"LOW_RISK":      tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
}

var materialGlyphs = map[string]rune{
	"ORDINARY": '=',
	"GOLDEN":   '$',
	"THORNY":   '#',
	"BRITTLE":  '%',
	"MOSSY":    '~',
}

// view - то, что клиент знает о партии: последний UPDATE и последняя подсветка.
type view struct {
	state    *api.ServerResponse
	affected map[string]string
	cursor   string
	logs     []api.LogEntry
}

// apply вливает ответ сервера в view.
func (v *view) apply(resp api.ServerResponse) {
	switch resp.Type {
	case "UPDATE":
		v.state = &resp
		v.affected = nil
		if p := v.piece(v.cursor); p == nil || p.Removed {
			v.cursor = nearestLive(resp.Pile, p)
		}
	case "PREDICTION":
		if resp.Hovered != v.cursor {
			return // ответ на устаревший HOVER
		}
		v.affected = make(map[string]string, len(resp.Affected))
		for _, a := range resp.Affected {
			v.affected[a.ID] = a.Tag
		}
	}
	v.logs = append(v.logs, resp.Logs...)
	if len(v.logs) > maxLogLines {
		v.logs = v.logs[len(v.logs)-maxLogLines:]
	}
}

func (v *view) piece(id string) *api.PieceView {
	if v.state == nil || v.state.Pile == nil {
		return nil
	}
	for i := range v.state.Pile.Pieces {
		if v.state.Pile.Pieces[i].ID == id {
			return &v.state.Pile.Pieces[i]
		}
	}
	return nil
}

// move сдвигает курсор на соседнее живое полено. dRow > 0 - вверх.
// Возвращает true, если курсор сдвинулся.
func (v *view) move(dRow, dCol int) bool {
	if v.state == nil {
		return false
	}
	next := step(v.state.Pile, v.piece(v.cursor), dRow, dCol)
	if next == "" || next == v.cursor {
		return false
	}
	v.cursor = next
	v.affected = nil
	return true
}

// step ищет соседа: в том же ряду ближайшего по X в сторону dCol,
// в соседнем ряду - ближайшего по X к текущему.
func step(pile *api.PileView, from *api.PieceView, dRow, dCol int) string {
	if pile == nil || from == nil {
		return ""
	}
	best := ""
	bestDist := math.Inf(1)
	for _, p := range pile.Pieces {
		if p.Removed || p.ID == from.ID {
			continue
		}
		var dist float64
		switch {
		case dRow != 0:
			if p.Row != from.Row+dRow {
				continue
			}
			dist = math.Abs(p.X - from.X)
		case dCol > 0:
			if p.Row != from.Row || p.X <= from.X {
				continue
			}
			dist = p.X - from.X
		case dCol < 0:
			if p.Row != from.Row || p.X >= from.X {
				continue
			}
			dist = from.X - p.X
		default:
			continue
		}
		if dist < bestDist {
			best, bestDist = p.ID, dist
		}
	}
	return best
}

// nearestLive - живое полено ближе всего к near. Без near - верхнее левое.
func nearestLive(pile *api.PileView, near *api.PieceView) string {
	if pile == nil {
		return ""
	}
	best := ""
	bestDist := math.Inf(1)
	for _, p := range pile.Pieces {
		if p.Removed {
			continue
		}
		var dist float64
		if near != nil {
			dist = math.Hypot(p.X-near.X, p.Y-near.Y)
		} else {
			// Сначала верхний ряд, внутри ряда - левее
			dist = -float64(p.Row)*1e6 + p.X
		}
		if dist < bestDist {
			best, bestDist = p.ID, dist
		}
	}
	return best
}

// draw рисует весь экран заново.
func (v *view) draw(s tcell.Screen, now time.Time) {
	s.Clear()
	if v.state == nil || v.state.Game == nil {
		drawText(s, 0, 0, styleHUD, "Stacking the woodpile...")
		s.Show()
		return
	}

	g := v.state.Game
	drawText(s, 0, 0, styleHUD, fmt.Sprintf("Health %d/%d   Score %d   Level %d   %s",
		g.Health, g.MaxHealth, g.Score, g.Level, g.Status))

	if enc := v.state.Encounter; enc != nil {
		left := max(time.UnixMilli(enc.Deadline).Sub(now), 0)
		drawText(s, 0, 1, styleAlert, fmt.Sprintf("A %s! Press SPACE to shoo it away (%.1fs)", enc.Creature, left.Seconds()))
	}

	bottom := v.drawPile(s)

	y := bottom + 2
	for _, l := range v.logs {
		drawText(s, 0, y, logStyle(l.Type), l.Text)
		y++
	}
	drawText(s, 0, y+1, styleHelp, "arrows move  enter pick  space shoo  h hint  n next level  r restart  q quit")
	s.Show()
}

// drawPile возвращает последнюю занятую строку экрана.
func (v *view) drawPile(s tcell.Screen) int {
	pile := v.state.Pile
	if pile == nil {
		return pileTop
	}
	maxRow := 0
	for _, p := range pile.Pieces {
		maxRow = max(maxRow, p.Row)
	}
	bottom := pileTop + maxRow*linesPerRow

	for _, p := range pile.Pieces {
		if p.Removed {
			continue
		}
		x := int(math.Round(p.X / pile.CellW * charsPerCell))
		y := bottom - p.Row*linesPerRow

		style, ok := predictionStyles[v.affected[p.ID]]
		if !ok {
			style = riskStyles[p.Risk]
		}
		if p.ID == v.cursor {
			style = style.Reverse(true)
		}

		glyph := materialGlyphs[p.Material]
		if glyph == 0 {
			glyph = '='
		}
		if p.Creature != "" {
			glyph = []rune(p.Creature)[0]
		}
		drawText(s, x, y, style, "("+string([]rune{glyph, glyph})+")")
	}

	width := int(math.Round(pile.Width / pile.CellW * charsPerCell))
	for x := 0; x < width; x++ {
		s.SetContent(x, bottom+1, '▒', nil, styleGround)
	}
	return bottom + 1
}

func logStyle(kind string) tcell.Style {
	switch kind {
	case "BITE", "ERROR", "GAME_OVER":
		return styleAlert
	case "COLLAPSE":
		return riskStyles["MEDIUM"]
	case "CLEARED":
		return riskStyles["NONE"]
	}
	return styleDefault
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
