package battle

import (
	"strings"
	"testing"
)

func repeat(id string, n int) []string {
	cards := make([]string, n)
	for i := range cards {
		cards[i] = id
	}
	return cards
}

func TestValidateDeckLegal(t *testing.T) {
	e := newTestEngine(t)

	v := e.ValidateDeck(legalDeck("alice"))
	if !v.Valid {
		t.Fatalf("expected deck to be valid, got errors: %v", v.Errors)
	}
	if len(v.Errors) != 0 {
		t.Errorf("valid deck must have no errors, got %v", v.Errors)
	}
}

func TestValidateDeckSizeBounds(t *testing.T) {
	e := newTestEngine(t)

	small := legalDeck("alice")
	small.Cards = small.Cards[:10]
	if v := e.ValidateDeck(small); v.Valid {
		t.Error("10-card deck must be invalid")
	}

	big := legalDeck("alice")
	for len(big.Cards) <= 40 {
		big.Cards = append(big.Cards, "c_dawn_cleric")
	}
	if v := e.ValidateDeck(big); v.Valid {
		t.Error("41-card deck must be invalid")
	}
}

func TestValidateDeckCopyLimits(t *testing.T) {
	e := newTestEngine(t)

	deck := legalDeck("alice")
	deck.Cards[0] = "c_stone_guard" // fourth copy
	v := e.ValidateDeck(deck)
	if v.Valid {
		t.Fatal("deck with 4 copies of a card must be invalid")
	}
	found := false
	for _, msg := range v.Errors {
		if strings.Contains(msg, "c_stone_guard") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a copy-limit error naming c_stone_guard, got %v", v.Errors)
	}
}

func TestValidateDeckLegendaryLimit(t *testing.T) {
	e := newTestEngine(t)

	deck := legalDeck("alice")
	deck.Cards[0] = "l_ember_dragon"
	deck.Cards[1] = "l_ember_dragon"
	v := e.ValidateDeck(deck)
	if v.Valid {
		t.Fatal("deck with 2 copies of a legendary must be invalid")
	}
}

func TestValidateDeckElementBalance(t *testing.T) {
	e := newTestEngine(t)

	// 9 fire creatures out of 10 creatures = 90% fire.
	cards := append(repeat("c_ember_sprite", 3), repeat("c_flame_imp", 3)...)
	cards = append(cards, repeat("c_grave_phoenix", 3)...)
	cards = append(cards, "c_dawn_cleric")
	cards = append(cards, repeat("s_healing_light", 3)...)
	cards = append(cards, repeat("s_divination", 3)...)
	cards = append(cards, repeat("s_war_chant", 2)...)
	cards = append(cards, repeat("s_frost_nova", 2)...)
	cards = append(cards, repeat("s_mana_spring", 2)...)
	deck := Deck{Owner: "alice", Cards: cards}

	v := e.ValidateDeck(deck)
	if v.Valid {
		t.Fatal("deck with 90% fire creatures must be invalid")
	}
	found := false
	for _, msg := range v.Errors {
		if strings.Contains(msg, "fire") && strings.Contains(msg, "90%") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an element-balance error naming fire at 90%%, got %v", v.Errors)
	}
}

func TestValidateDeckUnknownCards(t *testing.T) {
	e := newTestEngine(t)

	deck := legalDeck("alice")
	deck.Cards[0] = "c_no_such_card"
	deck.Cards[1] = "c_no_such_card"
	v := e.ValidateDeck(deck)
	if v.Valid {
		t.Fatal("deck with unknown cards must be invalid")
	}

	reports := 0
	for _, msg := range v.Errors {
		if strings.Contains(msg, "c_no_such_card") {
			reports++
		}
	}
	if reports != 1 {
		t.Errorf("unknown id must be reported exactly once, got %d reports: %v", reports, v.Errors)
	}
}

func TestValidateDeckAccumulatesErrors(t *testing.T) {
	e := newTestEngine(t)

	deck := Deck{Owner: "alice", Cards: append(repeat("c_ember_sprite", 10), "c_bogus")}
	v := e.ValidateDeck(deck)
	if v.Valid {
		t.Fatal("expected invalid deck")
	}
	if len(v.Errors) < 3 {
		t.Errorf("expected size, copy and unknown-card errors to accumulate, got %v", v.Errors)
	}
}
