package main

import (
	"github.com/rewired-gh/dugout/internal/game"
	"github.com/rewired-gh/dugout/internal/input"
	"github.com/rewired-gh/dugout/internal/logger"
	"github.com/rewired-gh/dugout/internal/render"
)

type poker interface {
	Poke()
}

// handleAction applies one key action. It reports whether the user quit.
func handleAction(a input.Action, tr *game.Tracker, dash *render.Dashboard, p poker) bool {
	onSchedule := dash.Active().Kind == render.KindSchedule

	switch a {
	case input.ActionQuit:
		return true
	case input.ActionPrevAtBat:
		tr.MovePrevious()
	case input.ActionNextAtBat:
		tr.MoveNext()
	case input.ActionLive:
		tr.GoLive()
	case input.ActionNextPanel:
		dash.NextPanel()
	case input.ActionPrevPanel:
		dash.PrevPanel()
	case input.ActionToggle:
		dash.Toggle()
	case input.ActionRefresh:
		p.Poke()
	case input.ActionCursorUp:
		if onSchedule {
			dash.MoveCursor(-1)
		}
	case input.ActionCursorDown:
		if onSchedule {
			dash.MoveCursor(1)
		}
	case input.ActionSelect:
		if !onSchedule {
			return false
		}
		g, ok := dash.SelectedGame()
		if !ok || g.GamePk == tr.CurrentGameID() {
			return false
		}
		logger.Info("Switching to game %d", g.GamePk)
		tr.SwitchGame(g.GamePk)
		dash.ShowPanel(render.KindGameday)
		p.Poke()
	}
	return false
}
