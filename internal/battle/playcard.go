package battle

import "go.uber.org/zap"

// PlayCardResult is the response of PlayCard.
type PlayCardResult struct {
	Result
	CardID     string `json:"card_id,omitempty"`
	InstanceID string `json:"instance_id,omitempty"`
}

// PlayCard plays a card from the given player's hand. Target is a player id,
// a creature instance id, or empty, depending on the card. Mana is debited up
// front; the only failure that refunds it (and returns the card to hand) is a
// full field for creatures, or a missing bind target for equipment.
func (e *Engine) PlayCard(state *BattleState, playerID, cardID, target string) PlayCardResult {
	if state.Over() {
		return PlayCardResult{Result: fail(ErrBattleOver, "battle is already over")}
	}
	p, found := state.Players[playerID]
	if !found {
		return PlayCardResult{Result: fail(ErrPlayerNotFound, "player %s not found", playerID)}
	}
	if state.ActivePlayer != playerID {
		return PlayCardResult{Result: fail(ErrNotYourTurn, "it is not %s's turn", playerID)}
	}

	handIdx := -1
	for i, id := range p.Hand {
		if id == cardID {
			handIdx = i
			break
		}
	}
	if handIdx == -1 {
		return PlayCardResult{Result: fail(ErrCardNotInHand, "card %s is not in hand", cardID)}
	}

	def, found := e.catalog.Lookup(cardID)
	if !found {
		return PlayCardResult{Result: fail(ErrUnknownCard, "unknown card id %s", cardID)}
	}

	cost := def.Cost
	if def.Type == CardTypeSpell && hasAncientTome(p) {
		if cost--; cost < 0 {
			cost = 0
		}
	}
	if p.Mana < cost {
		return PlayCardResult{Result: fail(ErrInsufficientMana, "not enough mana: need %d, have %d", cost, p.Mana)}
	}

	p.Mana -= cost
	p.Hand = append(p.Hand[:handIdx], p.Hand[handIdx+1:]...)

	refund := func() {
		p.Mana += cost
		p.Hand = append(p.Hand[:handIdx], append([]string{cardID}, p.Hand[handIdx:]...)...)
	}

	result := PlayCardResult{Result: ok(), CardID: cardID}

	switch def.Type {
	case CardTypeCreature, CardTypeLegendary:
		if len(p.Field) >= e.rules.FieldLimit {
			refund()
			return PlayCardResult{Result: fail(ErrFieldFull, "field is full (%d creatures)", e.rules.FieldLimit)}
		}
		inst := e.spawnCreature(def, playerID)
		p.Field = append(p.Field, inst)
		result.InstanceID = inst.InstanceID
		state.logf(playerID, "%s plays %s", playerID, def.Name)
		e.resolveOnEnter(state, p, inst)
		e.fireTraps(state, state.Opponent(playerID), TriggerCreatureEnter)

	case CardTypeSpell:
		state.logf(playerID, "%s casts %s", playerID, def.Name)
		e.fireSpellTraps(state, state.Opponent(playerID))
		if !state.Over() {
			e.resolveSpell(state, p, def, target)
		}

	case CardTypeTrap:
		trap := &TrapInstance{
			InstanceID: newInstanceID(),
			CardID:     cardID,
			Owner:      playerID,
			Trigger:    def.Trigger,
			Effect:     TrapEffect(def.Effect),
			Value:      def.EffectValue,
			Active:     true,
		}
		state.TrapZones[playerID] = append(state.TrapZones[playerID], trap)
		result.InstanceID = trap.InstanceID
		state.logf(playerID, "%s sets a face-down card", playerID)

	case CardTypeEquipment:
		bound := e.bindEquipment(state, p, def, target)
		if bound == nil {
			refund()
			return PlayCardResult{Result: fail(ErrCreatureNotFound, "no creature to equip %s", cardID)}
		}
		result.InstanceID = bound.InstanceID
		state.logf(playerID, "%s equips %s to %s", playerID, def.Name, bound.CardID)

	default:
		return PlayCardResult{Result: fail(ErrUnknownCard, "card %s has unplayable type %q", cardID, def.Type)}
	}

	e.logger.Debug("card played",
		zap.String("battle_id", state.ID),
		zap.String("player", playerID),
		zap.String("card", cardID),
	)
	e.checkWin(state)
	return result
}

// resolveOnEnter fires a just-played creature's on-enter ability.
func (e *Engine) resolveOnEnter(state *BattleState, p *PlayerBattleState, inst *CreatureInstance) {
	opp := state.Opponent(p.PlayerID)
	switch inst.Ability {
	case AbilityIgnite:
		state.logf(p.PlayerID, "%s ignites %s for 1 damage", inst.CardID, opp)
		e.damagePlayer(state, opp, 1)
	case AbilityAbyssCall:
		oppField := append([]*CreatureInstance(nil), state.Players[opp].Field...)
		for _, c := range oppField {
			if c.HP <= 5 {
				state.logf(p.PlayerID, "%s drags %s into the abyss", inst.CardID, c.CardID)
				e.destroyCreature(state, c)
			}
		}
	case AbilityManaSurge:
		if p.Mana < p.MaxMana {
			p.Mana++
		}
	}
}

// resolveSpell dispatches a spell through the handler table.
func (e *Engine) resolveSpell(state *BattleState, caster *PlayerBattleState, def CardDefinition, target string) {
	handler, found := spellHandlers[SpellEffect(def.Effect)]
	if !found {
		state.logf(caster.PlayerID, "%s fizzles (unknown effect %q)", def.Name, def.Effect)
		return
	}
	handler(e, state, caster, def, target)
}

type spellHandler func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, target string)

// spellHandlers is the closed dispatch table for spell effect tags. One entry
// per effect; negate, copy_ability and friends resolve to logged no-ops.
var spellHandlers = map[SpellEffect]spellHandler{
	SpellDamage: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, target string) {
		if c, _ := state.findCreature(target); c != nil {
			state.logf(caster.PlayerID, "%s hits %s for %d", def.Name, c.CardID, def.EffectValue)
			e.damageCreature(state, c, def.EffectValue)
			return
		}
		playerID := state.Opponent(caster.PlayerID)
		if _, found := state.Players[target]; found {
			playerID = target
		}
		state.logf(caster.PlayerID, "%s hits %s for %d", def.Name, playerID, def.EffectValue)
		e.damagePlayer(state, playerID, def.EffectValue)
	},
	SpellAOEDamage: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, _ string) {
		opp := state.Opponent(caster.PlayerID)
		state.logf(caster.PlayerID, "%s sweeps %s's field for %d", def.Name, opp, def.EffectValue)
		for _, c := range append([]*CreatureInstance(nil), state.Players[opp].Field...) {
			e.damageCreature(state, c, def.EffectValue)
		}
	},
	SpellHeal: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, target string) {
		if c, _ := state.findCreature(target); c != nil {
			c.HP += def.EffectValue
			if c.HP > c.MaxHP {
				c.HP = c.MaxHP
			}
			state.logf(caster.PlayerID, "%s heals %s for %d", def.Name, c.CardID, def.EffectValue)
			return
		}
		p := caster
		if other, found := state.Players[target]; found {
			p = other
		}
		healPlayer(p, def.EffectValue)
		state.logf(caster.PlayerID, "%s heals %s for %d", def.Name, p.PlayerID, def.EffectValue)
	},
	SpellBuffAttack: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, target string) {
		c := resolveFriendlyCreature(state, caster, target)
		if c == nil {
			state.logf(caster.PlayerID, "%s fizzles (no creature)", def.Name)
			return
		}
		c.Attack += def.EffectValue
		state.logf(caster.PlayerID, "%s grants %s +%d attack", def.Name, c.CardID, def.EffectValue)
	},
	SpellBuffDefense: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, target string) {
		c := resolveFriendlyCreature(state, caster, target)
		if c == nil {
			state.logf(caster.PlayerID, "%s fizzles (no creature)", def.Name)
			return
		}
		c.Defense += def.EffectValue
		state.logf(caster.PlayerID, "%s grants %s +%d defense", def.Name, c.CardID, def.EffectValue)
	},
	SpellFreeze: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, target string) {
		c, _ := state.findCreature(target)
		if c == nil {
			state.logf(caster.PlayerID, "%s fizzles (no target)", def.Name)
			return
		}
		c.Frozen = true
		state.logf(caster.PlayerID, "%s freezes %s", def.Name, c.CardID)
	},
	SpellPushBack: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, _ string) {
		opp := state.Opponent(caster.PlayerID)
		state.logf(caster.PlayerID, "%s pushes back %s's creatures", def.Name, opp)
		for _, c := range append([]*CreatureInstance(nil), state.Players[opp].Field...) {
			c.CanAttack = false
			e.damageCreature(state, c, def.EffectValue)
		}
	},
	SpellStun: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, target string) {
		c, _ := state.findCreature(target)
		if c == nil {
			state.logf(caster.PlayerID, "%s fizzles (no target)", def.Name)
			return
		}
		c.Stunned = true
		state.logf(caster.PlayerID, "%s stuns %s", def.Name, c.CardID)
	},
	SpellDraw: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, _ string) {
		state.logf(caster.PlayerID, "%s draws %d cards", caster.PlayerID, def.EffectValue)
		for i := 0; i < def.EffectValue && !state.Over(); i++ {
			e.DrawCard(state, caster.PlayerID)
		}
	},
	SpellDrain: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, target string) {
		c, _ := state.findCreature(target)
		if c == nil {
			state.logf(caster.PlayerID, "%s fizzles (no target)", def.Name)
			return
		}
		if c.HP > def.EffectValue {
			state.logf(caster.PlayerID, "%s fails to drain %s", def.Name, c.CardID)
			return
		}
		state.logf(caster.PlayerID, "%s drains %s", def.Name, c.CardID)
		e.destroyCreature(state, c)
		healPlayer(caster, def.EffectValue)
	},
	SpellGainMana: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, _ string) {
		caster.Mana += def.EffectValue
		if caster.Mana > caster.MaxMana {
			caster.Mana = caster.MaxMana
		}
		state.logf(caster.PlayerID, "%s gains %d mana", caster.PlayerID, def.EffectValue)
	},
	SpellNegate: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, _ string) {
		// Unimplemented in the rules; resolves as a no-op.
		state.logf(caster.PlayerID, "%s resolves with no effect", def.Name)
	},
	SpellResurrect: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, _ string) {
		if len(caster.Field) >= e.rules.FieldLimit {
			state.logf(caster.PlayerID, "%s fizzles (field is full)", def.Name)
			return
		}
		grave := state.Graveyards[caster.PlayerID]
		for i := len(grave) - 1; i >= 0; i-- {
			cardDef, found := e.catalog.Lookup(grave[i])
			if !found || (cardDef.Type != CardTypeCreature && cardDef.Type != CardTypeLegendary) {
				continue
			}
			state.Graveyards[caster.PlayerID] = append(grave[:i], grave[i+1:]...)
			inst := e.spawnCreature(cardDef, caster.PlayerID)
			inst.HP = cardDef.HP / 2
			if inst.HP < 1 {
				inst.HP = 1
			}
			caster.Field = append(caster.Field, inst)
			state.logf(caster.PlayerID, "%s resurrects %s at %d hp", def.Name, cardDef.ID, inst.HP)
			return
		}
		state.logf(caster.PlayerID, "%s fizzles (nothing to resurrect)", def.Name)
	},
	SpellCopyAbility: func(e *Engine, state *BattleState, caster *PlayerBattleState, def CardDefinition, _ string) {
		// Unimplemented in the rules; resolves as a no-op.
		state.logf(caster.PlayerID, "%s resolves with no effect", def.Name)
	},
}

// bindEquipment attaches an equipment card to the target creature, or to the
// first creature on the owner's field when no target resolves. Returns the
// creature it bound to, or nil when the owner has no creature at all.
func (e *Engine) bindEquipment(state *BattleState, p *PlayerBattleState, def CardDefinition, target string) *CreatureInstance {
	var bound *CreatureInstance
	for _, c := range p.Field {
		if c.InstanceID == target {
			bound = c
			break
		}
	}
	if bound == nil {
		if len(p.Field) == 0 {
			return nil
		}
		bound = p.Field[0]
	}

	bound.Attack += def.StatBoost.Attack
	bound.Defense += def.StatBoost.Defense
	bound.MaxHP += def.StatBoost.HP
	bound.HP += def.StatBoost.HP

	p.Equipment[bound.InstanceID] = append(p.Equipment[bound.InstanceID], &EquipmentBinding{
		CardID:   def.ID,
		Boost:    def.StatBoost,
		Duration: def.Duration,
	})
	return bound
}

// hasAncientTome reports whether any creature of the player carries an
// ancient tome binding.
func hasAncientTome(p *PlayerBattleState) bool {
	for _, bindings := range p.Equipment {
		for _, b := range bindings {
			if b.CardID == CardAncientTome {
				return true
			}
		}
	}
	return false
}

// resolveFriendlyCreature returns the caster's creature matching target, or
// the first friendly creature when the target does not resolve.
func resolveFriendlyCreature(state *BattleState, caster *PlayerBattleState, target string) *CreatureInstance {
	for _, c := range caster.Field {
		if c.InstanceID == target {
			return c
		}
	}
	if c, _ := state.findCreature(target); c != nil {
		return c
	}
	if len(caster.Field) > 0 {
		return caster.Field[0]
	}
	return nil
}
