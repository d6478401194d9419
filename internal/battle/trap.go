package battle

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newInstanceID() string {
	return uuid.NewString()
}

// TrapResult is the response of ActivateTrap.
type TrapResult struct {
	Result
	TrapID string     `json:"trap_id,omitempty"`
	Effect TrapEffect `json:"effect,omitempty"`
}

// ActivateTrap lets a player manually spring one of their own armed traps
// outside the automatic trigger checks. The trap is consumed either way.
func (e *Engine) ActivateTrap(state *BattleState, trapInstanceID string) TrapResult {
	if state.Over() {
		return TrapResult{Result: fail(ErrBattleOver, "battle is already over")}
	}
	trap := state.findTrap(trapInstanceID)
	if trap == nil {
		return TrapResult{Result: fail(ErrTrapNotFound, "trap %s not found", trapInstanceID)}
	}
	if !trap.Active {
		return TrapResult{Result: fail(ErrTrapAlreadyUsed, "trap %s has already been used", trapInstanceID)}
	}

	e.consumeTrap(state, trap)
	e.applyTrapEffect(state, trap)
	e.checkWin(state)
	return TrapResult{Result: ok(), TrapID: trapInstanceID, Effect: trap.Effect}
}

// fireTraps springs every armed trap of the given owner whose trigger
// matches, in arming order. Each trap is consumed the first time it fires.
func (e *Engine) fireTraps(state *BattleState, ownerID string, trigger TrapTrigger) {
	for _, trap := range append([]*TrapInstance(nil), state.TrapZones[ownerID]...) {
		if !trap.Active || trap.Trigger != trigger {
			continue
		}
		e.consumeTrap(state, trap)
		e.applyTrapEffect(state, trap)
		if state.Over() {
			return
		}
	}
}

// fireSpellTraps springs traps armed against spell casts. Both trigger
// spellings in the catalog mean the same thing.
func (e *Engine) fireSpellTraps(state *BattleState, ownerID string) {
	e.fireTraps(state, ownerID, TriggerEnemySpell)
	if !state.Over() {
		e.fireTraps(state, ownerID, TriggerSpellCast)
	}
}

// consumeTrap deactivates a trap and removes it from its owner's trap zone.
func (e *Engine) consumeTrap(state *BattleState, trap *TrapInstance) {
	trap.Active = false
	zone := state.TrapZones[trap.Owner]
	for i, t := range zone {
		if t.InstanceID == trap.InstanceID {
			state.TrapZones[trap.Owner] = append(zone[:i], zone[i+1:]...)
			break
		}
	}
	state.logf(trap.Owner, "%s's trap %s is sprung", trap.Owner, trap.CardID)
	e.logger.Debug("trap sprung",
		zap.String("battle_id", state.ID),
		zap.String("owner", trap.Owner),
		zap.String("card", trap.CardID),
		zap.String("effect", string(trap.Effect)),
	)
}

// applyTrapEffect resolves a sprung trap against the owner's opponent.
func (e *Engine) applyTrapEffect(state *BattleState, trap *TrapInstance) {
	owner := state.Players[trap.Owner]
	oppID := state.Opponent(trap.Owner)
	opp := state.Players[oppID]

	switch trap.Effect {
	case TrapCounterDamage, TrapDamage:
		state.logf(trap.Owner, "%s strikes %s for %d", trap.CardID, oppID, trap.Value)
		e.damagePlayer(state, oppID, trap.Value)

	case TrapStun:
		if len(opp.Field) > 0 {
			target := opp.Field[0]
			target.Stunned = true
			state.logf(trap.Owner, "%s stuns %s", trap.CardID, target.CardID)
		}

	case TrapStealMana:
		stolen := trap.Value
		if stolen > opp.Mana {
			stolen = opp.Mana
		}
		opp.Mana -= stolen
		owner.Mana += stolen
		if owner.Mana > owner.MaxMana {
			owner.Mana = owner.MaxMana
		}
		state.logf(trap.Owner, "%s siphons %d mana from %s", trap.CardID, stolen, oppID)

	case TrapAOEDamage:
		state.logf(trap.Owner, "%s blasts %s's field for %d", trap.CardID, oppID, trap.Value)
		for _, c := range append([]*CreatureInstance(nil), opp.Field...) {
			e.damageCreature(state, c, trap.Value)
		}

	case TrapReduceAttack:
		for _, c := range opp.Field {
			c.Attack -= trap.Value
			if c.Attack < 0 {
				c.Attack = 0
			}
		}
		state.logf(trap.Owner, "%s withers %s's creatures by %d attack", trap.CardID, oppID, trap.Value)

	case TrapFreeze:
		if len(opp.Field) > 0 {
			target := opp.Field[e.rng.Intn(len(opp.Field))]
			target.Frozen = true
			state.logf(trap.Owner, "%s freezes %s", trap.CardID, target.CardID)
		}

	case TrapStealCreature:
		grave := state.Graveyards[oppID]
		if len(grave) > 0 && len(owner.Hand) < e.rules.HandLimit {
			cardID := grave[len(grave)-1]
			owner.Hand = append(owner.Hand, cardID)
			state.logf(trap.Owner, "%s steals %s from %s's graveyard", trap.CardID, cardID, oppID)
		}

	case TrapExtraTurn:
		state.ActivePlayer = trap.Owner
		state.logf(trap.Owner, "%s grants %s another turn", trap.CardID, trap.Owner)

	case TrapReflectSpell, TrapRedirect:
		// Unimplemented in the rules; the trap is consumed with no effect.
		state.logf(trap.Owner, "%s resolves with no effect", trap.CardID)

	default:
		state.logf(trap.Owner, "%s fizzles (unknown effect %q)", trap.CardID, trap.Effect)
	}
}
