package battle

import (
	"fmt"

	"go.uber.org/zap"
)

// checkWin evaluates the win conditions. It is deterministic and
// order-independent over the two player ids: hp loss is checked for both
// players before deck-out. Winner and reason are set exactly once and are
// sticky; further calls are no-ops.
func (e *Engine) checkWin(state *BattleState) {
	if state.Over() {
		return
	}

	for _, id := range state.playerIDs() {
		if state.Players[id].HP <= 0 {
			e.declareWinner(state, state.Opponent(id), "HP reached 0")
			return
		}
	}

	for _, id := range state.playerIDs() {
		p := state.Players[id]
		if len(p.DrawPile) == 0 && len(p.Hand) == 0 {
			e.declareWinner(state, state.Opponent(id), fmt.Sprintf("%s decked out", id))
			return
		}
	}
}

func (e *Engine) declareWinner(state *BattleState, winner, reason string) {
	state.Winner = winner
	state.WinReason = reason
	state.logf("", "%s wins: %s", winner, reason)
	e.logger.Info("battle decided",
		zap.String("battle_id", state.ID),
		zap.String("winner", winner),
		zap.String("reason", reason),
	)
}
