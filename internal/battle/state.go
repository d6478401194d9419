package battle

import "fmt"

// Core battle constants. These are the defaults; a Rules value carried by the
// engine can override them for non-standard servers.
const (
	defaultStartingHP   = 30
	defaultStartingMana = 1
	defaultManaCap      = 10
	defaultHandLimit    = 7
	defaultFieldLimit   = 5
	defaultOpeningHand  = 5
	defaultDeckMin      = 20
	defaultDeckMax      = 40
	defaultMaxCopies    = 3
)

// Rules carries the numeric knobs of a battle.
type Rules struct {
	StartingHP   int
	StartingMana int
	ManaCap      int
	HandLimit    int
	FieldLimit   int
	OpeningHand  int
	DeckMin      int
	DeckMax      int
	MaxCopies    int
}

// DefaultRules returns the standard ruleset.
func DefaultRules() Rules {
	return Rules{
		StartingHP:   defaultStartingHP,
		StartingMana: defaultStartingMana,
		ManaCap:      defaultManaCap,
		HandLimit:    defaultHandLimit,
		FieldLimit:   defaultFieldLimit,
		OpeningHand:  defaultOpeningHand,
		DeckMin:      defaultDeckMin,
		DeckMax:      defaultDeckMax,
		MaxCopies:    defaultMaxCopies,
	}
}

// Deck is a named, ordered list of card ids owned by a player. Duplicates are
// allowed up to the copy limits enforced by ValidateDeck.
type Deck struct {
	Owner string   `json:"owner"`
	Name  string   `json:"name"`
	Cards []string `json:"cards"`
}

// CreatureInstance is a creature in play. Instances are created when a
// creature or legendary card is played and destroyed when their hp reaches
// zero or an explicit destroy effect removes them.
type CreatureInstance struct {
	InstanceID string  `json:"instance_id"`
	CardID     string  `json:"card_id"`
	Owner      string  `json:"owner"`
	Attack     int     `json:"attack"`
	Defense    int     `json:"defense"`
	HP         int     `json:"hp"`
	MaxHP      int     `json:"max_hp"`
	Ability    Ability `json:"ability,omitempty"`

	CanAttack  bool `json:"can_attack"`
	AttackUsed bool `json:"attack_used"`
	Frozen     bool `json:"frozen"`
	Stunned    bool `json:"stunned"`
	Taunting   bool `json:"taunting"`
	Barrier    bool `json:"barrier"`
	Evasion    bool `json:"evasion"`
	DiveUsed   bool `json:"dive_used"`
}

// TrapInstance is an armed face-down trap. It is consumed the first time its
// trigger fires or it is activated manually.
type TrapInstance struct {
	InstanceID string      `json:"instance_id"`
	CardID     string      `json:"card_id"`
	Owner      string      `json:"owner"`
	Trigger    TrapTrigger `json:"trigger"`
	Effect     TrapEffect  `json:"effect"`
	Value      int         `json:"value"`
	Active     bool        `json:"active"`
}

// EquipmentBinding records an equipment card applied to a creature instance.
// Duration counts down at the end of the owner's turns; -1 means permanent.
type EquipmentBinding struct {
	CardID   string    `json:"card_id"`
	Boost    StatBoost `json:"boost"`
	Duration int       `json:"duration"`
}

// PlayerBattleState is one player's half of a battle.
type PlayerBattleState struct {
	PlayerID string `json:"player_id"`
	HP       int    `json:"hp"`
	MaxHP    int    `json:"max_hp"`
	Mana     int    `json:"mana"`
	MaxMana  int    `json:"max_mana"`

	DrawPile []string            `json:"-"`
	Hand     []string            `json:"hand"`
	Field    []*CreatureInstance `json:"field"`

	// Equipment bindings keyed by creature instance id.
	Equipment map[string][]*EquipmentBinding `json:"equipment"`
}

// LogEntry is one append-only battle log line.
type LogEntry struct {
	Turn    int    `json:"turn"`
	Player  string `json:"player,omitempty"`
	Message string `json:"message"`
}

// BattleState is the full mutable state of one battle. It is owned by a single
// session; the engine mutates it synchronously and never retains it. Callers
// embedding the engine in a concurrent server must serialize access per battle.
type BattleState struct {
	ID           string                         `json:"id"`
	Turn         int                            `json:"turn"`
	ActivePlayer string                         `json:"active_player"`
	Phase        Phase                          `json:"phase"`
	Players      map[string]*PlayerBattleState  `json:"players"`
	Graveyards   map[string][]string            `json:"graveyards"`
	TrapZones    map[string][]*TrapInstance     `json:"trap_zones"`
	Log          []LogEntry                     `json:"log"`
	Winner       string                         `json:"winner,omitempty"`
	WinReason    string                         `json:"win_reason,omitempty"`
}

// Over reports whether a winner has been decided.
func (s *BattleState) Over() bool {
	return s.Winner != ""
}

// Opponent returns the other player's id.
func (s *BattleState) Opponent(playerID string) string {
	for id := range s.Players {
		if id != playerID {
			return id
		}
	}
	return ""
}

// playerIDs returns both player ids in lexical order, making every scan over
// players deterministic.
func (s *BattleState) playerIDs() []string {
	ids := make([]string, 0, len(s.Players))
	for id := range s.Players {
		ids = append(ids, id)
	}
	if len(ids) == 2 && ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}
	return ids
}

// findCreature locates a creature instance on either field.
func (s *BattleState) findCreature(instanceID string) (*CreatureInstance, *PlayerBattleState) {
	for _, id := range s.playerIDs() {
		p := s.Players[id]
		for _, c := range p.Field {
			if c.InstanceID == instanceID {
				return c, p
			}
		}
	}
	return nil, nil
}

// findTrap locates an armed trap in either trap zone.
func (s *BattleState) findTrap(instanceID string) *TrapInstance {
	for _, id := range s.playerIDs() {
		for _, t := range s.TrapZones[id] {
			if t.InstanceID == instanceID {
				return t
			}
		}
	}
	return nil
}

func (s *BattleState) logf(player, format string, args ...any) {
	s.Log = append(s.Log, LogEntry{
		Turn:    s.Turn,
		Player:  player,
		Message: fmt.Sprintf(format, args...),
	})
}
