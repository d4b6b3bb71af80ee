package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pulse-arena/core"
)

// action is one decoded key press
type action uint8

const (
	actNone action = iota
	actMove
	actStop
	actFire
	actSlash
	actPause
	actRestart
	actTempoUp
	actTempoDown
	actMute
	actQuit
)

// tempoStep is the BPM change per tempo key press
const tempoStep = 5.0

var (
	dirUp    = core.Vec2{Y: -1}
	dirDown  = core.Vec2{Y: 1}
	dirLeft  = core.Vec2{X: -1}
	dirRight = core.Vec2{X: 1}
)

// decodeKey maps a key event to an action and, for move and fire, a direction
// Letters move, arrows fire, space slashes toward the last aim
func decodeKey(ev *tcell.EventKey) (action, core.Vec2) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit, core.Vec2{}
	case tcell.KeyUp:
		return actFire, dirUp
	case tcell.KeyDown:
		return actFire, dirDown
	case tcell.KeyLeft:
		return actFire, dirLeft
	case tcell.KeyRight:
		return actFire, dirRight
	case tcell.KeyRune:
	default:
		return actNone, core.Vec2{}
	}

	switch ev.Rune() {
	case 'w':
		return actMove, dirUp
	case 's':
		return actMove, dirDown
	case 'a':
		return actMove, dirLeft
	case 'd':
		return actMove, dirRight
	case 'x':
		return actStop, core.Vec2{}
	case ' ':
		return actSlash, core.Vec2{}
	case 'p':
		return actPause, core.Vec2{}
	case 'r':
		return actRestart, core.Vec2{}
	case '+', '=':
		return actTempoUp, core.Vec2{}
	case '-':
		return actTempoDown, core.Vec2{}
	case 'm':
		return actMute, core.Vec2{}
	case 'q':
		return actQuit, core.Vec2{}
	}
	return actNone, core.Vec2{}
}
