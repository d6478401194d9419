package battle

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine implements the battle rules. It holds no battle state of its own:
// every operation receives the BattleState it mutates, so callers own state
// lifetime and serialization (one mutator per battle at a time).
type Engine struct {
	logger  *zap.Logger
	catalog Catalog
	rules   Rules
	rng     *rand.Rand
}

// NewEngine creates an engine with the default rules and a time-seeded rng.
func NewEngine(catalog Catalog, logger *zap.Logger) *Engine {
	return NewEngineWithSeed(catalog, logger, time.Now().UnixNano())
}

// NewEngineWithSeed creates an engine whose shuffles and combat rolls are
// reproducible from the given seed.
func NewEngineWithSeed(catalog Catalog, logger *zap.Logger, seed int64) *Engine {
	return &Engine{
		logger:  logger,
		catalog: catalog,
		rules:   DefaultRules(),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// SetRules replaces the engine ruleset. Intended for server configuration at
// startup, before any battle exists.
func (e *Engine) SetRules(rules Rules) {
	e.rules = rules
}

// Rules returns the active ruleset.
func (e *Engine) Rules() Rules {
	return e.rules
}

// StartBattle validates both decks, shuffles them and assembles a fresh
// BattleState with opening hands drawn. Deck A's owner acts first.
func (e *Engine) StartBattle(deckA, deckB Deck) (*BattleState, error) {
	if deckA.Owner == "" || deckB.Owner == "" {
		return nil, fmt.Errorf("both decks must have an owner")
	}
	if deckA.Owner == deckB.Owner {
		return nil, fmt.Errorf("decks belong to the same player %s", deckA.Owner)
	}
	for _, d := range []Deck{deckA, deckB} {
		if v := e.ValidateDeck(d); !v.Valid {
			return nil, fmt.Errorf("deck %q of %s is not legal: %v", d.Name, d.Owner, v.Errors)
		}
	}

	state := &BattleState{
		ID:           uuid.NewString(),
		Turn:         1,
		ActivePlayer: deckA.Owner,
		Phase:        PhaseMain,
		Players:      make(map[string]*PlayerBattleState, 2),
		Graveyards:   make(map[string][]string, 2),
		TrapZones:    make(map[string][]*TrapInstance, 2),
	}

	for _, d := range []Deck{deckA, deckB} {
		pile := append([]string(nil), d.Cards...)
		e.rng.Shuffle(len(pile), func(i, j int) {
			pile[i], pile[j] = pile[j], pile[i]
		})
		state.Players[d.Owner] = &PlayerBattleState{
			PlayerID:  d.Owner,
			HP:        e.rules.StartingHP,
			MaxHP:     e.rules.StartingHP,
			Mana:      e.rules.StartingMana,
			MaxMana:   e.rules.StartingMana,
			DrawPile:  pile,
			Hand:      make([]string, 0, e.rules.HandLimit),
			Field:     make([]*CreatureInstance, 0, e.rules.FieldLimit),
			Equipment: make(map[string][]*EquipmentBinding),
		}
		state.Graveyards[d.Owner] = []string{}
		state.TrapZones[d.Owner] = []*TrapInstance{}
	}

	// Opening hands go through the normal draw routine so fatigue and
	// hand-limit rules apply identically to mid-battle draws.
	for _, id := range state.playerIDs() {
		for i := 0; i < e.rules.OpeningHand; i++ {
			e.DrawCard(state, id)
		}
	}

	state.logf("", "battle started: %s vs %s", deckA.Owner, deckB.Owner)
	e.logger.Info("battle started",
		zap.String("battle_id", state.ID),
		zap.String("player_a", deckA.Owner),
		zap.String("player_b", deckB.Owner),
	)
	return state, nil
}

// DrawResult is the response of DrawCard.
type DrawResult struct {
	Result
	CardID    string `json:"card_id,omitempty"`
	Fatigue   bool   `json:"fatigue,omitempty"`
	Discarded bool   `json:"discarded,omitempty"`
}

// DrawCard moves the top card of the player's draw pile to their hand.
// An empty pile deals one fatigue damage instead (only if the hand had room
// for the would-be card); a full hand silently discards the drawn card to the
// graveyard.
func (e *Engine) DrawCard(state *BattleState, playerID string) DrawResult {
	p, found := state.Players[playerID]
	if !found {
		return DrawResult{Result: fail(ErrPlayerNotFound, "player %s not found", playerID)}
	}
	if state.Over() {
		return DrawResult{Result: fail(ErrBattleOver, "battle is already over")}
	}

	if len(p.DrawPile) == 0 {
		if len(p.Hand) >= e.rules.HandLimit {
			return DrawResult{Result: ok()}
		}
		p.HP--
		state.logf(playerID, "%s takes 1 fatigue damage", playerID)
		e.checkWin(state)
		return DrawResult{Result: ok(), Fatigue: true}
	}

	cardID := p.DrawPile[0]
	p.DrawPile = p.DrawPile[1:]

	if len(p.Hand) >= e.rules.HandLimit {
		state.Graveyards[playerID] = append(state.Graveyards[playerID], cardID)
		e.checkWin(state)
		return DrawResult{Result: ok(), CardID: cardID, Discarded: true}
	}

	p.Hand = append(p.Hand, cardID)
	e.checkWin(state)
	return DrawResult{Result: ok(), CardID: cardID}
}

// spawnCreature builds a fresh instance from a card definition, carrying
// forward only the owner. Nothing from a previous instance of the same card
// survives a respawn.
func (e *Engine) spawnCreature(def CardDefinition, owner string) *CreatureInstance {
	return &CreatureInstance{
		InstanceID: uuid.NewString(),
		CardID:     def.ID,
		Owner:      owner,
		Attack:     def.Attack,
		Defense:    def.Defense,
		HP:         def.HP,
		MaxHP:      def.HP,
		Ability:    def.Ability,
		CanAttack:  true,
		Taunting:   def.Ability == AbilityTaunt,
		Barrier:    def.Ability == AbilityBarrier,
		Evasion:    def.Ability == AbilityEvasion,
	}
}

// removeFromField detaches an instance from its owner's field and drops its
// equipment bindings. Returns false if the instance was not on the field.
func (s *BattleState) removeFromField(inst *CreatureInstance) bool {
	p := s.Players[inst.Owner]
	if p == nil {
		return false
	}
	for i, c := range p.Field {
		if c.InstanceID == inst.InstanceID {
			p.Field = append(p.Field[:i], p.Field[i+1:]...)
			delete(p.Equipment, inst.InstanceID)
			return true
		}
	}
	return false
}

// destroyCreature handles a creature leaving play: rebirth returns the card
// to its owner's hand instead of the graveyard, haunt damages the opposing
// player, and the owner's creature_death traps fire.
func (e *Engine) destroyCreature(state *BattleState, inst *CreatureInstance) {
	if !state.removeFromField(inst) {
		return
	}
	owner := inst.Owner
	p := state.Players[owner]

	switch inst.Ability {
	case AbilityRebirth:
		if len(p.Hand) < e.rules.HandLimit {
			p.Hand = append(p.Hand, inst.CardID)
			state.logf(owner, "%s is reborn into %s's hand", inst.CardID, owner)
		} else {
			state.Graveyards[owner] = append(state.Graveyards[owner], inst.CardID)
		}
	case AbilityHaunt:
		state.Graveyards[owner] = append(state.Graveyards[owner], inst.CardID)
		opp := state.Opponent(owner)
		state.Players[opp].HP--
		state.logf(owner, "%s haunts %s for 1 damage", inst.CardID, opp)
	default:
		state.Graveyards[owner] = append(state.Graveyards[owner], inst.CardID)
	}

	e.fireTraps(state, owner, TriggerCreatureDeath)
	e.checkWin(state)
}

// damageCreature applies damage to a creature and destroys it when lethal.
// Returns true if the creature died.
func (e *Engine) damageCreature(state *BattleState, inst *CreatureInstance, amount int) bool {
	if amount <= 0 {
		return false
	}
	inst.HP -= amount
	if inst.HP <= 0 {
		e.destroyCreature(state, inst)
		return true
	}
	return false
}

// damagePlayer applies damage to a player and re-evaluates the win condition.
func (e *Engine) damagePlayer(state *BattleState, playerID string, amount int) {
	if amount <= 0 {
		return
	}
	p := state.Players[playerID]
	if p == nil {
		return
	}
	p.HP -= amount
	e.checkWin(state)
}

// healPlayer heals a player, never exceeding max hp.
func healPlayer(p *PlayerBattleState, amount int) {
	if amount <= 0 {
		return
	}
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}
