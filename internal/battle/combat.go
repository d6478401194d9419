package battle

import "go.uber.org/zap"

// AttackResult is the response of AttackWithCreature.
type AttackResult struct {
	Result
	Evaded             bool `json:"evaded,omitempty"`
	Damage             int  `json:"damage"`
	OverkillDamage     int  `json:"overkill_damage,omitempty"`
	RetaliationDamage  int  `json:"retaliation_damage,omitempty"`
	DefenderDestroyed  bool `json:"defender_destroyed,omitempty"`
	AttackerDestroyed  bool `json:"attacker_destroyed,omitempty"`
	PreemptedByTrap    bool `json:"preempted_by_trap,omitempty"`
}

// AttackWithCreature resolves one attack declaration. TargetID is either the
// opposing player's id (or empty, for a direct attack) or an opposing
// creature's instance id. The attacker's owner must be the active player.
func (e *Engine) AttackWithCreature(state *BattleState, attackerInstanceID, targetID string) AttackResult {
	if state.Over() {
		return AttackResult{Result: fail(ErrBattleOver, "battle is already over")}
	}

	attacker, _ := state.findCreature(attackerInstanceID)
	if attacker == nil {
		return AttackResult{Result: fail(ErrCreatureNotFound, "creature %s not found", attackerInstanceID)}
	}
	ownerID := attacker.Owner
	if state.ActivePlayer != ownerID {
		return AttackResult{Result: fail(ErrNotYourTurn, "it is not %s's turn", ownerID)}
	}
	if attacker.AttackUsed {
		return AttackResult{Result: fail(ErrCannotAttack, "%s already attacked this turn", attacker.CardID)}
	}
	if !attacker.CanAttack {
		return AttackResult{Result: fail(ErrCannotAttack, "%s cannot attack", attacker.CardID)}
	}
	if attacker.Frozen {
		return AttackResult{Result: fail(ErrCannotAttack, "%s is frozen", attacker.CardID)}
	}
	if attacker.Stunned {
		return AttackResult{Result: fail(ErrCannotAttack, "%s is stunned", attacker.CardID)}
	}

	oppID := state.Opponent(ownerID)
	opp := state.Players[oppID]

	var defender *CreatureInstance
	if targetID != "" && targetID != oppID {
		for _, c := range opp.Field {
			if c.InstanceID == targetID {
				defender = c
				break
			}
		}
		if defender == nil {
			return AttackResult{Result: fail(ErrCreatureNotFound, "target %s not found on %s's field", targetID, oppID)}
		}
	}

	if tauntsUp(opp) && (defender == nil || !defender.Taunting) {
		return AttackResult{Result: fail(ErrMustAttackTaunt, "a taunting creature must be attacked first")}
	}

	// Armed defender traps fire before the attack resolves; they can end the
	// battle or kill the attacker outright.
	e.fireTraps(state, oppID, TriggerEnemyAttack)
	if state.Over() {
		return AttackResult{Result: ok(), PreemptedByTrap: true}
	}
	if alive, _ := state.findCreature(attackerInstanceID); alive == nil {
		state.logf(ownerID, "%s is destroyed before its attack resolves", attacker.CardID)
		return AttackResult{Result: ok(), PreemptedByTrap: true}
	}
	if defender != nil {
		if alive, _ := state.findCreature(defender.InstanceID); alive == nil {
			defender = nil
			if tauntsUp(opp) {
				return AttackResult{Result: fail(ErrMustAttackTaunt, "a taunting creature must be attacked first")}
			}
		}
	}

	attacker.AttackUsed = true

	if defender == nil {
		return e.resolveDirectAttack(state, attacker, oppID)
	}
	return e.resolveCreatureAttack(state, attacker, defender, oppID)
}

func (e *Engine) resolveDirectAttack(state *BattleState, attacker *CreatureInstance, oppID string) AttackResult {
	damage := attacker.Attack
	state.logf(attacker.Owner, "%s attacks %s for %d", attacker.CardID, oppID, damage)
	e.damagePlayer(state, oppID, damage)

	result := AttackResult{Result: ok(), Damage: damage}
	if attacker.Ability == AbilityDragonFury && !state.Over() {
		state.logf(attacker.Owner, "%s's fury burns %s for %d", attacker.CardID, oppID, attacker.Attack)
		e.damagePlayer(state, oppID, attacker.Attack)
	}
	return result
}

func (e *Engine) resolveCreatureAttack(state *BattleState, attacker, defender *CreatureInstance, oppID string) AttackResult {
	ownerID := attacker.Owner

	if defender.Evasion && e.rng.Intn(2) == 0 {
		state.logf(ownerID, "%s evades %s's attack", defender.CardID, attacker.CardID)
		return AttackResult{Result: ok(), Evaded: true}
	}

	var net int
	if defender.Barrier {
		// Barrier absorbs the entire hit once; it is restored at the
		// barrier owner's next turn start.
		defender.Barrier = false
		state.logf(ownerID, "%s's barrier absorbs %s's attack", defender.CardID, attacker.CardID)
	} else {
		net = attacker.Attack - defender.Defense
		if net < 1 {
			net = 1
		}
		if attacker.Ability == AbilityDiveStrike && !attacker.DiveUsed {
			attacker.DiveUsed = true
			net *= 2
			state.logf(ownerID, "%s dive-strikes for double damage", attacker.CardID)
		}
	}

	result := AttackResult{Result: ok(), Damage: net}
	priorHP := defender.HP

	if net > 0 {
		defender.HP -= net
		state.logf(ownerID, "%s hits %s for %d", attacker.CardID, defender.CardID, net)
	}

	if defender.Ability == AbilityMoltenArmor {
		// Fixed 1-point reflect, independent of net damage.
		attacker.HP--
		state.logf(ownerID, "%s's molten armor sears %s for 1", defender.CardID, attacker.CardID)
	}

	if attacker.Ability == AbilityLifeDrain && net > 0 {
		healPlayer(state.Players[ownerID], net/2)
		state.logf(ownerID, "%s drains %d life for %s", attacker.CardID, net/2, ownerID)
	}

	defenderDied := defender.HP <= 0
	if defenderDied {
		result.DefenderDestroyed = true
		if attacker.Ability == AbilityTrample {
			if excess := net - priorHP; excess > 0 {
				result.OverkillDamage = excess
				state.logf(ownerID, "%s tramples through for %d", attacker.CardID, excess)
				e.damagePlayer(state, oppID, excess)
			}
		}
		e.destroyCreature(state, defender)
	}

	attackerDied := attacker.HP <= 0
	if !attackerDied && !defenderDied && attacker.Ability != AbilityWhirlpool &&
		!defender.Frozen && !defender.Stunned {
		ret := defender.Attack - attacker.Defense
		if ret < 1 {
			ret = 1
		}
		result.RetaliationDamage = ret
		attacker.HP -= ret
		state.logf(ownerID, "%s retaliates against %s for %d", defender.CardID, attacker.CardID, ret)
		attackerDied = attacker.HP <= 0
	}

	if attackerDied {
		result.AttackerDestroyed = true
		e.destroyCreature(state, attacker)
	}

	if attacker.Ability == AbilityDragonFury && !state.Over() {
		state.logf(ownerID, "%s's fury burns %s for %d", attacker.CardID, oppID, attacker.Attack)
		e.damagePlayer(state, oppID, attacker.Attack)
	}

	e.checkWin(state)
	e.logger.Debug("attack resolved",
		zap.String("battle_id", state.ID),
		zap.String("attacker", attacker.CardID),
		zap.Int("damage", net),
	)
	return result
}

// tauntsUp reports whether the player has any taunting creature on the field.
func tauntsUp(p *PlayerBattleState) bool {
	for _, c := range p.Field {
		if c.Taunting {
			return true
		}
	}
	return false
}
