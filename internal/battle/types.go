package battle

// CardType classifies a card definition.
type CardType string

const (
	CardTypeCreature  CardType = "creature"
	CardTypeSpell     CardType = "spell"
	CardTypeTrap      CardType = "trap"
	CardTypeEquipment CardType = "equipment"
	CardTypeLegendary CardType = "legendary"
)

// Rarity of a card definition.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Element of a card definition. Deck balance rules are computed per element.
type Element string

const (
	ElementFire   Element = "fire"
	ElementWater  Element = "water"
	ElementEarth  Element = "earth"
	ElementAir    Element = "air"
	ElementShadow Element = "shadow"
	ElementLight  Element = "light"
)

// Ability is a creature ability tag. Abilities are either one-time
// (on enter, on death) or persistent rule exceptions checked by the
// combat and turn code.
type Ability string

const (
	AbilityNone Ability = ""

	// On-enter abilities
	AbilityIgnite    Ability = "ignite"
	AbilityAbyssCall Ability = "abyss_call"
	AbilityManaSurge Ability = "mana_surge"

	// Persistent combat abilities
	AbilityTaunt       Ability = "taunt"
	AbilityBarrier     Ability = "barrier"
	AbilityEvasion     Ability = "evasion"
	AbilityDiveStrike  Ability = "dive_strike"
	AbilityMoltenArmor Ability = "molten_armor"
	AbilityLifeDrain   Ability = "life_drain"
	AbilityTrample     Ability = "trample"
	AbilityWhirlpool   Ability = "whirlpool"
	AbilityDragonFury  Ability = "dragon_fury"

	// On-death abilities
	AbilityRebirth Ability = "rebirth"
	AbilityHaunt   Ability = "haunt"

	// Turn passives
	AbilityVortex         Ability = "vortex"
	AbilityWorldWill      Ability = "world_will"
	AbilitySovereignStorm Ability = "sovereign_storm"
)

// SpellEffect is the mechanical outcome tag of a spell card.
type SpellEffect string

const (
	SpellDamage      SpellEffect = "damage"
	SpellAOEDamage   SpellEffect = "aoe_damage"
	SpellHeal        SpellEffect = "heal"
	SpellBuffAttack  SpellEffect = "buff_attack"
	SpellBuffDefense SpellEffect = "buff_defense"
	SpellFreeze      SpellEffect = "freeze"
	SpellPushBack    SpellEffect = "push_back"
	SpellStun        SpellEffect = "stun"
	SpellDraw        SpellEffect = "draw"
	SpellDrain       SpellEffect = "drain"
	SpellGainMana    SpellEffect = "gain_mana"
	SpellNegate      SpellEffect = "negate"
	SpellResurrect   SpellEffect = "resurrect"
	SpellCopyAbility SpellEffect = "copy_ability"
)

// TrapTrigger is the condition under which an armed trap fires automatically.
type TrapTrigger string

const (
	TriggerEnemyAttack   TrapTrigger = "enemy_attack"
	TriggerEnemySpell    TrapTrigger = "enemy_spell"
	TriggerSpellCast     TrapTrigger = "spell_cast"
	TriggerCreatureDeath TrapTrigger = "creature_death"
	TriggerTurnEnd       TrapTrigger = "turn_end"
	TriggerCreatureEnter TrapTrigger = "creature_enter"
)

// TrapEffect is the mechanical outcome tag of a trap card.
type TrapEffect string

const (
	TrapCounterDamage TrapEffect = "counter_damage"
	TrapReflectSpell  TrapEffect = "reflect_spell"
	TrapStun          TrapEffect = "stun"
	TrapStealMana     TrapEffect = "steal_mana"
	TrapAOEDamage     TrapEffect = "aoe_damage"
	TrapReduceAttack  TrapEffect = "reduce_attack"
	TrapFreeze        TrapEffect = "freeze"
	TrapStealCreature TrapEffect = "steal_creature"
	TrapDamage        TrapEffect = "damage"
	TrapExtraTurn     TrapEffect = "extra_turn"
	TrapRedirect      TrapEffect = "redirect"
)

// Phase is the coarse phase tag carried on the battle state.
type Phase string

const (
	PhaseMain Phase = "main"
)

// StatBoost is the set of stat deltas an equipment card applies.
type StatBoost struct {
	Attack  int `yaml:"attack" json:"attack"`
	Defense int `yaml:"defense" json:"defense"`
	HP      int `yaml:"hp" json:"hp"`
}

// CardDefinition is an immutable catalog entry. The engine only ever reads
// definitions; all mutable per-battle data lives on instances.
type CardDefinition struct {
	ID      string   `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Type    CardType `yaml:"type" json:"type"`
	Rarity  Rarity   `yaml:"rarity" json:"rarity"`
	Element Element  `yaml:"element" json:"element"`
	Cost    int      `yaml:"cost" json:"cost"`

	// Creature / legendary fields
	Attack  int     `yaml:"attack" json:"attack,omitempty"`
	Defense int     `yaml:"defense" json:"defense,omitempty"`
	HP      int     `yaml:"hp" json:"hp,omitempty"`
	Ability Ability `yaml:"ability" json:"ability,omitempty"`

	// Spell / trap fields
	Effect      string      `yaml:"effect" json:"effect,omitempty"`
	EffectValue int         `yaml:"effect_value" json:"effect_value,omitempty"`
	Target      string      `yaml:"target" json:"target,omitempty"`
	Trigger     TrapTrigger `yaml:"trigger" json:"trigger,omitempty"`

	// Equipment fields
	StatBoost StatBoost `yaml:"stat_boost" json:"stat_boost,omitempty"`
	Duration  int       `yaml:"duration" json:"duration,omitempty"`
}

// IsLegendary reports whether the definition is limited to one copy per deck.
// Legendary status is signalled by rarity or by card type, whichever is set.
func (d CardDefinition) IsLegendary() bool {
	return d.Type == CardTypeLegendary || d.Rarity == RarityLegendary
}

// Catalog supplies immutable card definitions by id.
type Catalog interface {
	Lookup(id string) (CardDefinition, bool)
}

// CardAncientTome is the equipment card whose binding discounts spell costs
// by one mana for its owner.
const CardAncientTome = "e_ancient_tome"
