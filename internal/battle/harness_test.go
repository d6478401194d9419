package battle

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

// mapCatalog is a Catalog backed by a plain map, mirroring the real card set
// closely enough for engine tests.
type mapCatalog map[string]CardDefinition

func (m mapCatalog) Lookup(id string) (CardDefinition, bool) {
	def, found := m[id]
	return def, found
}

func testCatalog() mapCatalog {
	defs := []CardDefinition{
		{ID: "c_ember_sprite", Name: "Ember Sprite", Type: CardTypeCreature, Rarity: RarityCommon, Element: ElementFire, Cost: 1, Attack: 1, Defense: 0, HP: 2},
		{ID: "c_flame_imp", Name: "Flame Imp", Type: CardTypeCreature, Rarity: RarityCommon, Element: ElementFire, Cost: 2, Attack: 2, Defense: 1, HP: 2, Ability: AbilityIgnite},
		{ID: "c_lava_titan", Name: "Lava Titan", Type: CardTypeCreature, Rarity: RarityEpic, Element: ElementFire, Cost: 6, Attack: 5, Defense: 3, HP: 6, Ability: AbilityMoltenArmor},
		{ID: "c_grave_phoenix", Name: "Grave Phoenix", Type: CardTypeCreature, Rarity: RarityRare, Element: ElementFire, Cost: 4, Attack: 3, Defense: 1, HP: 3, Ability: AbilityRebirth},
		{ID: "c_tide_caller", Name: "Tide Caller", Type: CardTypeCreature, Rarity: RarityCommon, Element: ElementWater, Cost: 2, Attack: 1, Defense: 1, HP: 3, Ability: AbilityManaSurge},
		{ID: "c_coral_sentinel", Name: "Coral Sentinel", Type: CardTypeCreature, Rarity: RarityRare, Element: ElementWater, Cost: 3, Attack: 1, Defense: 2, HP: 4, Ability: AbilityBarrier},
		{ID: "c_river_behemoth", Name: "River Behemoth", Type: CardTypeCreature, Rarity: RarityEpic, Element: ElementWater, Cost: 7, Attack: 6, Defense: 2, HP: 8, Ability: AbilityTrample},
		{ID: "c_whirlpool_djinn", Name: "Whirlpool Djinn", Type: CardTypeCreature, Rarity: RarityRare, Element: ElementWater, Cost: 4, Attack: 3, Defense: 2, HP: 4, Ability: AbilityWhirlpool},
		{ID: "c_stone_guard", Name: "Stone Guard", Type: CardTypeCreature, Rarity: RarityCommon, Element: ElementEarth, Cost: 3, Attack: 1, Defense: 3, HP: 5, Ability: AbilityTaunt},
		{ID: "c_mist_dancer", Name: "Mist Dancer", Type: CardTypeCreature, Rarity: RarityRare, Element: ElementAir, Cost: 3, Attack: 3, Defense: 0, HP: 3, Ability: AbilityEvasion},
		{ID: "c_storm_roc", Name: "Storm Roc", Type: CardTypeCreature, Rarity: RarityRare, Element: ElementAir, Cost: 4, Attack: 3, Defense: 1, HP: 4, Ability: AbilityDiveStrike},
		{ID: "c_vortex_elemental", Name: "Vortex Elemental", Type: CardTypeCreature, Rarity: RarityEpic, Element: ElementAir, Cost: 5, Attack: 2, Defense: 2, HP: 5, Ability: AbilityVortex},
		{ID: "c_blood_thorn", Name: "Blood Thorn", Type: CardTypeCreature, Rarity: RarityRare, Element: ElementShadow, Cost: 4, Attack: 4, Defense: 1, HP: 4, Ability: AbilityLifeDrain},
		{ID: "c_hollow_shade", Name: "Hollow Shade", Type: CardTypeCreature, Rarity: RarityCommon, Element: ElementShadow, Cost: 2, Attack: 2, Defense: 0, HP: 3, Ability: AbilityHaunt},
		{ID: "c_dawn_cleric", Name: "Dawn Cleric", Type: CardTypeCreature, Rarity: RarityCommon, Element: ElementLight, Cost: 2, Attack: 1, Defense: 1, HP: 4},
		{ID: "l_abyss_leviathan", Name: "Abyss Leviathan", Type: CardTypeLegendary, Rarity: RarityLegendary, Element: ElementWater, Cost: 9, Attack: 7, Defense: 4, HP: 10, Ability: AbilityAbyssCall},
		{ID: "l_ember_dragon", Name: "Ember Dragon", Type: CardTypeLegendary, Rarity: RarityLegendary, Element: ElementFire, Cost: 8, Attack: 6, Defense: 3, HP: 8, Ability: AbilityDragonFury},
		{ID: "l_world_tree", Name: "World Tree", Type: CardTypeLegendary, Rarity: RarityLegendary, Element: ElementLight, Cost: 7, Attack: 2, Defense: 5, HP: 9, Ability: AbilityWorldWill},
		{ID: "l_storm_sovereign", Name: "Storm Sovereign", Type: CardTypeLegendary, Rarity: RarityLegendary, Element: ElementAir, Cost: 8, Attack: 5, Defense: 3, HP: 8, Ability: AbilitySovereignStorm},
		{ID: "s_fireball", Name: "Fireball", Type: CardTypeSpell, Rarity: RarityCommon, Element: ElementFire, Cost: 3, Effect: "damage", EffectValue: 4, Target: "any"},
		{ID: "s_meteor_shower", Name: "Meteor Shower", Type: CardTypeSpell, Rarity: RarityRare, Element: ElementFire, Cost: 5, Effect: "aoe_damage", EffectValue: 2},
		{ID: "s_healing_light", Name: "Healing Light", Type: CardTypeSpell, Rarity: RarityCommon, Element: ElementLight, Cost: 2, Effect: "heal", EffectValue: 5, Target: "any"},
		{ID: "s_war_chant", Name: "War Chant", Type: CardTypeSpell, Rarity: RarityCommon, Element: ElementEarth, Cost: 2, Effect: "buff_attack", EffectValue: 2, Target: "creature"},
		{ID: "s_frost_nova", Name: "Frost Nova", Type: CardTypeSpell, Rarity: RarityRare, Element: ElementWater, Cost: 3, Effect: "freeze", Target: "creature"},
		{ID: "s_divination", Name: "Divination", Type: CardTypeSpell, Rarity: RarityCommon, Element: ElementLight, Cost: 2, Effect: "draw", EffectValue: 2},
		{ID: "s_soul_siphon", Name: "Soul Siphon", Type: CardTypeSpell, Rarity: RarityEpic, Element: ElementShadow, Cost: 4, Effect: "drain", EffectValue: 3, Target: "creature"},
		{ID: "s_mana_spring", Name: "Mana Spring", Type: CardTypeSpell, Rarity: RarityRare, Element: ElementWater, Cost: 0, Effect: "gain_mana", EffectValue: 2},
		{ID: "s_raise_dead", Name: "Raise Dead", Type: CardTypeSpell, Rarity: RarityEpic, Element: ElementShadow, Cost: 4, Effect: "resurrect"},
		{ID: "t_spike_pit", Name: "Spike Pit", Type: CardTypeTrap, Rarity: RarityCommon, Element: ElementEarth, Cost: 2, Trigger: TriggerEnemyAttack, Effect: "counter_damage", EffectValue: 2},
		{ID: "t_mana_leech", Name: "Mana Leech", Type: CardTypeTrap, Rarity: RarityRare, Element: ElementShadow, Cost: 2, Trigger: TriggerSpellCast, Effect: "steal_mana", EffectValue: 2},
		{ID: "t_explosive_rune", Name: "Explosive Rune", Type: CardTypeTrap, Rarity: RarityRare, Element: ElementFire, Cost: 3, Trigger: TriggerCreatureEnter, Effect: "aoe_damage", EffectValue: 1},
		{ID: "t_soul_brand", Name: "Soul Brand", Type: CardTypeTrap, Rarity: RarityRare, Element: ElementShadow, Cost: 3, Trigger: TriggerTurnEnd, Effect: "damage", EffectValue: 2},
		{ID: "t_hourglass_seal", Name: "Hourglass Seal", Type: CardTypeTrap, Rarity: RarityEpic, Element: ElementLight, Cost: 5, Trigger: TriggerCreatureDeath, Effect: "extra_turn"},
		{ID: "t_grave_robber", Name: "Grave Robber", Type: CardTypeTrap, Rarity: RarityEpic, Element: ElementShadow, Cost: 3, Trigger: TriggerCreatureDeath, Effect: "steal_creature"},
		{ID: "t_frost_snare", Name: "Frost Snare", Type: CardTypeTrap, Rarity: RarityRare, Element: ElementWater, Cost: 2, Trigger: TriggerEnemyAttack, Effect: "freeze"},
		{ID: CardAncientTome, Name: "Ancient Tome", Type: CardTypeEquipment, Rarity: RarityEpic, Element: ElementLight, Cost: 3, StatBoost: StatBoost{Defense: 1}, Duration: -1},
		{ID: "e_flame_blade", Name: "Flame Blade", Type: CardTypeEquipment, Rarity: RarityRare, Element: ElementFire, Cost: 2, StatBoost: StatBoost{Attack: 2}, Duration: 3},
	}
	m := make(mapCatalog, len(defs))
	for _, def := range defs {
		m[def.ID] = def
	}
	return m
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngineWithSeed(testCatalog(), zaptest.NewLogger(t), 42)
}

// legalDeck is a 20-card deck that passes every validation rule.
func legalDeck(owner string) Deck {
	return Deck{
		Owner: owner,
		Name:  "starter",
		Cards: []string{
			"c_ember_sprite", "c_ember_sprite", "c_ember_sprite",
			"c_stone_guard", "c_stone_guard", "c_stone_guard",
			"c_tide_caller", "c_tide_caller", "c_tide_caller",
			"c_mist_dancer", "c_mist_dancer", "c_mist_dancer",
			"c_dawn_cleric", "c_dawn_cleric",
			"s_fireball", "s_fireball", "s_fireball",
			"s_healing_light", "s_healing_light", "s_healing_light",
		},
	}
}

// newTestBattle starts a battle between alice and bob with legal decks.
func newTestBattle(t *testing.T, e *Engine) *BattleState {
	t.Helper()
	state, err := e.StartBattle(legalDeck("alice"), legalDeck("bob"))
	if err != nil {
		t.Fatalf("failed to start battle: %v", err)
	}
	return state
}

// bareState assembles a minimal two-player state for scenario tests that
// need exact hands, mana and fields.
func bareState(e *Engine) *BattleState {
	state := &BattleState{
		ID:           "test-battle",
		Turn:         1,
		ActivePlayer: "alice",
		Phase:        PhaseMain,
		Players:      make(map[string]*PlayerBattleState, 2),
		Graveyards:   map[string][]string{"alice": {}, "bob": {}},
		TrapZones:    map[string][]*TrapInstance{"alice": {}, "bob": {}},
	}
	for _, id := range []string{"alice", "bob"} {
		state.Players[id] = &PlayerBattleState{
			PlayerID:  id,
			HP:        e.rules.StartingHP,
			MaxHP:     e.rules.StartingHP,
			Mana:      e.rules.StartingMana,
			MaxMana:   e.rules.StartingMana,
			DrawPile:  []string{"c_ember_sprite", "c_ember_sprite", "c_ember_sprite"},
			Hand:      []string{},
			Field:     []*CreatureInstance{},
			Equipment: make(map[string][]*EquipmentBinding),
		}
	}
	return state
}

// putCreature spawns a card onto a player's field directly.
func putCreature(t *testing.T, e *Engine, state *BattleState, owner, cardID string) *CreatureInstance {
	t.Helper()
	def, found := e.catalog.Lookup(cardID)
	if !found {
		t.Fatalf("unknown test card %s", cardID)
	}
	inst := e.spawnCreature(def, owner)
	state.Players[owner].Field = append(state.Players[owner].Field, inst)
	return inst
}

// putTrap arms a trap card in a player's trap zone directly.
func putTrap(t *testing.T, e *Engine, state *BattleState, owner, cardID string) *TrapInstance {
	t.Helper()
	def, found := e.catalog.Lookup(cardID)
	if !found {
		t.Fatalf("unknown test card %s", cardID)
	}
	trap := &TrapInstance{
		InstanceID: newInstanceID(),
		CardID:     cardID,
		Owner:      owner,
		Trigger:    def.Trigger,
		Effect:     TrapEffect(def.Effect),
		Value:      def.EffectValue,
		Active:     true,
	}
	state.TrapZones[owner] = append(state.TrapZones[owner], trap)
	return trap
}
