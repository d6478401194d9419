package battle

import (
	"strings"
	"testing"
)

func TestStartBattleOpeningState(t *testing.T) {
	e := newTestEngine(t)
	state := newTestBattle(t, e)

	if state.Turn != 1 {
		t.Errorf("expected turn 1, got %d", state.Turn)
	}
	if state.ActivePlayer != "alice" {
		t.Errorf("expected alice to act first, got %s", state.ActivePlayer)
	}
	if state.Phase != PhaseMain {
		t.Errorf("expected main phase, got %s", state.Phase)
	}

	for _, id := range []string{"alice", "bob"} {
		p := state.Players[id]
		if len(p.Hand) != 5 {
			t.Errorf("%s: expected opening hand of 5, got %d", id, len(p.Hand))
		}
		if len(p.DrawPile) != 15 {
			t.Errorf("%s: expected 15 cards left in pile, got %d", id, len(p.DrawPile))
		}
		if p.HP != 30 || p.MaxHP != 30 {
			t.Errorf("%s: expected 30/30 hp, got %d/%d", id, p.HP, p.MaxHP)
		}
		if p.Mana != 1 || p.MaxMana != 1 {
			t.Errorf("%s: expected 1/1 mana, got %d/%d", id, p.Mana, p.MaxMana)
		}
	}
}

func TestStartBattleShuffles(t *testing.T) {
	e := newTestEngine(t)
	state := newTestBattle(t, e)

	// The combined hand+pile must be a permutation of the deck list.
	p := state.Players["alice"]
	counts := make(map[string]int)
	for _, id := range append(append([]string{}, p.Hand...), p.DrawPile...) {
		counts[id]++
	}
	for _, id := range legalDeck("alice").Cards {
		counts[id]--
	}
	for id, n := range counts {
		if n != 0 {
			t.Errorf("card %s count off by %d after shuffle", id, n)
		}
	}
}

func TestStartBattleRejectsIllegalDeck(t *testing.T) {
	e := newTestEngine(t)

	bad := legalDeck("alice")
	bad.Cards = bad.Cards[:5]
	if _, err := e.StartBattle(bad, legalDeck("bob")); err == nil {
		t.Fatal("expected error for illegal deck")
	}
	if _, err := e.StartBattle(legalDeck("alice"), legalDeck("alice")); err == nil {
		t.Fatal("expected error for decks with the same owner")
	}
}

func TestDrawCard(t *testing.T) {
	e := newTestEngine(t)
	state := bareState(e)
	p := state.Players["alice"]

	res := e.DrawCard(state, "alice")
	if !res.Success || res.CardID == "" {
		t.Fatalf("expected a drawn card, got %+v", res)
	}
	if len(p.Hand) != 1 || len(p.DrawPile) != 2 {
		t.Errorf("expected hand 1 / pile 2, got %d / %d", len(p.Hand), len(p.DrawPile))
	}
}

func TestDrawCardFullHandDiscardsSilently(t *testing.T) {
	e := newTestEngine(t)
	state := bareState(e)
	p := state.Players["alice"]
	p.Hand = repeat("c_dawn_cleric", 7)

	res := e.DrawCard(state, "alice")
	if !res.Success || !res.Discarded {
		t.Fatalf("expected a silent discard, got %+v", res)
	}
	if len(p.Hand) != 7 {
		t.Errorf("hand must stay at 7, got %d", len(p.Hand))
	}
	if len(state.Graveyards["alice"]) != 1 {
		t.Errorf("discarded card must land in graveyard, got %v", state.Graveyards["alice"])
	}
}

func TestDrawCardFatigue(t *testing.T) {
	e := newTestEngine(t)
	state := bareState(e)
	p := state.Players["alice"]
	p.DrawPile = nil
	p.Hand = []string{"c_dawn_cleric"}

	res := e.DrawCard(state, "alice")
	if !res.Success || !res.Fatigue {
		t.Fatalf("expected fatigue, got %+v", res)
	}
	if p.HP != 29 {
		t.Errorf("expected exactly 1 fatigue damage, hp = %d", p.HP)
	}
	if len(p.Hand) != 1 {
		t.Errorf("fatigue must not change the hand, got %d cards", len(p.Hand))
	}
}

func TestDrawCardEmptyPileFullHand(t *testing.T) {
	e := newTestEngine(t)
	state := bareState(e)
	p := state.Players["alice"]
	p.DrawPile = nil
	p.Hand = repeat("c_dawn_cleric", 7)

	res := e.DrawCard(state, "alice")
	if !res.Success {
		t.Fatalf("expected a no-op success, got %+v", res)
	}
	if p.HP != 30 || len(p.Hand) != 7 {
		t.Errorf("empty pile with full hand must change nothing: hp=%d hand=%d", p.HP, len(p.Hand))
	}
}

func TestDeckOutLosesBattle(t *testing.T) {
	e := newTestEngine(t)
	state := bareState(e)
	p := state.Players["bob"]
	p.DrawPile = nil
	p.Hand = nil

	e.checkWin(state)

	if state.Winner != "alice" {
		t.Fatalf("expected alice to win by deck-out, got winner %q", state.Winner)
	}
	if !strings.Contains(state.WinReason, "bob decked out") {
		t.Errorf("expected reason to name bob decking out, got %q", state.WinReason)
	}
}
