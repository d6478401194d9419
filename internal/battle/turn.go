package battle

import "go.uber.org/zap"

// ActionType names the actions a turn can contain.
type ActionType string

const (
	ActionPlayCard     ActionType = "play_card"
	ActionAttack       ActionType = "attack"
	ActionActivateTrap ActionType = "activate_trap"
	ActionDraw         ActionType = "draw"
)

// TurnAction is one entry of the ordered action list passed to ProcessTurn.
// Only the fields relevant to its Type are read.
type TurnAction struct {
	Type       ActionType `json:"type"`
	CardID     string     `json:"card_id,omitempty"`
	Target     string     `json:"target,omitempty"`
	AttackerID string     `json:"attacker_id,omitempty"`
	TargetID   string     `json:"target_id,omitempty"`
	TrapID     string     `json:"trap_id,omitempty"`
}

// ActionResult pairs a processed action with its outcome.
type ActionResult struct {
	Action TurnAction `json:"action"`
	Result Result     `json:"result"`
}

// TurnResult is the response of ProcessTurn.
type TurnResult struct {
	Result
	Actions   []ActionResult `json:"actions"`
	Winner    string         `json:"winner,omitempty"`
	WinReason string         `json:"win_reason,omitempty"`
}

// ProcessTurn runs one full turn for the active player: draw, mana refresh,
// attack-flag reset, the caller's ordered actions, end-of-turn passives and
// the handoff to the opponent. Processing stops early if a win is reached.
func (e *Engine) ProcessTurn(state *BattleState, actions []TurnAction) TurnResult {
	if state.Over() {
		return TurnResult{Result: fail(ErrBattleOver, "battle is already over")}
	}
	active := state.ActivePlayer
	p := state.Players[active]

	e.DrawCard(state, active)
	if state.Over() {
		return e.finishTurn(state, nil)
	}

	p.MaxMana = state.Turn + 1
	if p.MaxMana > e.rules.ManaCap {
		p.MaxMana = e.rules.ManaCap
	}
	p.Mana = p.MaxMana

	for _, c := range p.Field {
		c.AttackUsed = false
		c.CanAttack = true
		c.Frozen = false
		c.Stunned = false
		// Barrier is restored at its owner's turn start for creatures whose
		// card grants it.
		if def, found := e.catalog.Lookup(c.CardID); found && def.Ability == AbilityBarrier {
			c.Barrier = true
		}
	}

	e.applyStartPassives(state, active)
	if state.Over() {
		return e.finishTurn(state, nil)
	}

	results := make([]ActionResult, 0, len(actions))
	for _, a := range actions {
		if state.Over() {
			break
		}
		results = append(results, ActionResult{Action: a, Result: e.dispatchAction(state, active, a)})
	}
	if state.Over() {
		return e.finishTurn(state, results)
	}

	e.applyEndPassives(state, active)
	e.tickEquipment(state, active)
	e.fireTraps(state, active, TriggerTurnEnd)

	e.checkWin(state)
	if state.Over() {
		return e.finishTurn(state, results)
	}

	state.ActivePlayer = state.Opponent(active)
	state.Turn++
	state.logf("", "turn %d: %s is the active player", state.Turn, state.ActivePlayer)
	e.logger.Debug("turn processed",
		zap.String("battle_id", state.ID),
		zap.Int("turn", state.Turn),
		zap.String("active_player", state.ActivePlayer),
	)
	return e.finishTurn(state, results)
}

func (e *Engine) finishTurn(state *BattleState, results []ActionResult) TurnResult {
	return TurnResult{
		Result:    ok(),
		Actions:   results,
		Winner:    state.Winner,
		WinReason: state.WinReason,
	}
}

func (e *Engine) dispatchAction(state *BattleState, active string, a TurnAction) Result {
	switch a.Type {
	case ActionPlayCard:
		return e.PlayCard(state, active, a.CardID, a.Target).Result
	case ActionAttack:
		return e.AttackWithCreature(state, a.AttackerID, a.TargetID).Result
	case ActionActivateTrap:
		return e.ActivateTrap(state, a.TrapID).Result
	case ActionDraw:
		return e.DrawCard(state, active).Result
	default:
		return fail(ErrInvalidAction, "unknown action type %q", a.Type)
	}
}

// applyStartPassives fires start-of-turn passive abilities on the active
// player's field.
func (e *Engine) applyStartPassives(state *BattleState, active string) {
	oppID := state.Opponent(active)
	for _, c := range append([]*CreatureInstance(nil), state.Players[active].Field...) {
		if c.Ability != AbilityVortex {
			continue
		}
		state.logf(active, "%s's vortex tears at %s", c.CardID, oppID)
		for _, enemy := range append([]*CreatureInstance(nil), state.Players[oppID].Field...) {
			e.damageCreature(state, enemy, 1)
		}
		e.damagePlayer(state, oppID, 1)
		if state.Over() {
			return
		}
	}
}

// applyEndPassives fires end-of-turn passive abilities on the active player's
// field.
func (e *Engine) applyEndPassives(state *BattleState, active string) {
	oppID := state.Opponent(active)
	for _, c := range append([]*CreatureInstance(nil), state.Players[active].Field...) {
		switch c.Ability {
		case AbilityWorldWill:
			healPlayer(state.Players[active], 2)
			state.logf(active, "%s mends %s for 2 hp", c.CardID, active)
		case AbilitySovereignStorm:
			state.logf(active, "%s's storm lashes %s", c.CardID, oppID)
			for _, enemy := range append([]*CreatureInstance(nil), state.Players[oppID].Field...) {
				e.damageCreature(state, enemy, 1)
			}
			e.damagePlayer(state, oppID, 1)
		}
		if state.Over() {
			return
		}
	}
}

// tickEquipment counts down timed equipment bindings on the active player's
// creatures, unwinding the stat boosts of expired ones. Permanent bindings
// (duration -1) never tick.
func (e *Engine) tickEquipment(state *BattleState, active string) {
	p := state.Players[active]
	for instID, bindings := range p.Equipment {
		var c *CreatureInstance
		for _, fc := range p.Field {
			if fc.InstanceID == instID {
				c = fc
				break
			}
		}
		kept := bindings[:0]
		for _, b := range bindings {
			if b.Duration < 0 {
				kept = append(kept, b)
				continue
			}
			b.Duration--
			if b.Duration > 0 {
				kept = append(kept, b)
				continue
			}
			if c != nil {
				c.Attack -= b.Boost.Attack
				if c.Attack < 0 {
					c.Attack = 0
				}
				c.Defense -= b.Boost.Defense
				if c.Defense < 0 {
					c.Defense = 0
				}
				c.MaxHP -= b.Boost.HP
				if c.HP > c.MaxHP {
					c.HP = c.MaxHP
				}
				state.logf(active, "%s on %s wears off", b.CardID, c.CardID)
			}
		}
		if len(kept) == 0 {
			delete(p.Equipment, instID)
		} else {
			p.Equipment[instID] = kept
		}
	}
}
