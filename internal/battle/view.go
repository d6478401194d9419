package battle

// viewLogLimit caps how much of the battle log a projection carries.
const viewLogLimit = 20

// CreatureView is the projected form of a creature instance.
type CreatureView struct {
	InstanceID string  `json:"instance_id"`
	CardID     string  `json:"card_id"`
	Owner      string  `json:"owner"`
	Attack     int     `json:"attack"`
	Defense    int     `json:"defense"`
	HP         int     `json:"hp"`
	MaxHP      int     `json:"max_hp"`
	Ability    Ability `json:"ability,omitempty"`
	CanAttack  bool    `json:"can_attack"`
	AttackUsed bool    `json:"attack_used"`
	Frozen     bool    `json:"frozen"`
	Stunned    bool    `json:"stunned"`
	Taunting   bool    `json:"taunting"`
	Barrier    bool    `json:"barrier"`
}

// TrapView is the projected form of an armed trap; only its owner ever
// receives it.
type TrapView struct {
	InstanceID string      `json:"instance_id"`
	CardID     string      `json:"card_id"`
	Trigger    TrapTrigger `json:"trigger"`
	Effect     TrapEffect  `json:"effect"`
	Value      int         `json:"value"`
}

// PlayerView is one player's half of a projected battle. For the viewer the
// hand and trap zone are fully visible; for the opponent the hand collapses
// to HandSize and the trap zone to TrapCount.
type PlayerView struct {
	PlayerID  string         `json:"player_id"`
	HP        int            `json:"hp"`
	MaxHP     int            `json:"max_hp"`
	Mana      int            `json:"mana"`
	MaxMana   int            `json:"max_mana"`
	DeckSize  int            `json:"deck_size"`
	HandSize  int            `json:"hand_size"`
	Hand      []string       `json:"hand"`
	Field     []CreatureView `json:"field"`
	Traps     []TrapView     `json:"traps"`
	TrapCount int            `json:"trap_count"`
	Graveyard []string       `json:"graveyard"`
}

// BattleView is the per-viewer filtered projection of a battle. It is the
// only shape external callers (HUD, transport) are ever handed.
type BattleView struct {
	BattleID     string                `json:"battle_id"`
	Turn         int                   `json:"turn"`
	Phase        Phase                 `json:"phase"`
	ActivePlayer string                `json:"active_player"`
	Winner       string                `json:"winner,omitempty"`
	WinReason    string                `json:"win_reason,omitempty"`
	Log          []LogEntry            `json:"log"`
	Players      map[string]PlayerView `json:"players"`
}

// View produces the battle state as seen by viewerID. The opponent's hand is
// hidden behind a count and their trap zone behind a count; graveyards are
// public information.
func (e *Engine) View(state *BattleState, viewerID string) BattleView {
	view := BattleView{
		BattleID:     state.ID,
		Turn:         state.Turn,
		Phase:        state.Phase,
		ActivePlayer: state.ActivePlayer,
		Winner:       state.Winner,
		WinReason:    state.WinReason,
		Players:      make(map[string]PlayerView, len(state.Players)),
	}

	logStart := 0
	if len(state.Log) > viewLogLimit {
		logStart = len(state.Log) - viewLogLimit
	}
	view.Log = append([]LogEntry(nil), state.Log[logStart:]...)

	for _, id := range state.playerIDs() {
		p := state.Players[id]
		pv := PlayerView{
			PlayerID:  id,
			HP:        p.HP,
			MaxHP:     p.MaxHP,
			Mana:      p.Mana,
			MaxMana:   p.MaxMana,
			DeckSize:  len(p.DrawPile),
			HandSize:  len(p.Hand),
			TrapCount: len(state.TrapZones[id]),
			Graveyard: append([]string(nil), state.Graveyards[id]...),
		}
		for _, c := range p.Field {
			pv.Field = append(pv.Field, CreatureView{
				InstanceID: c.InstanceID,
				CardID:     c.CardID,
				Owner:      c.Owner,
				Attack:     c.Attack,
				Defense:    c.Defense,
				HP:         c.HP,
				MaxHP:      c.MaxHP,
				Ability:    c.Ability,
				CanAttack:  c.CanAttack,
				AttackUsed: c.AttackUsed,
				Frozen:     c.Frozen,
				Stunned:    c.Stunned,
				Taunting:   c.Taunting,
				Barrier:    c.Barrier,
			})
		}
		if id == viewerID {
			pv.Hand = append([]string(nil), p.Hand...)
			for _, t := range state.TrapZones[id] {
				pv.Traps = append(pv.Traps, TrapView{
					InstanceID: t.InstanceID,
					CardID:     t.CardID,
					Trigger:    t.Trigger,
					Effect:     t.Effect,
					Value:      t.Value,
				})
			}
		}
		view.Players[id] = pv
	}
	return view
}
