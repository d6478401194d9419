package battle

import (
	"fmt"
	"math"
	"sort"
)

// elementShareLimit is the maximum fraction of the creature subset a single
// element may occupy.
const elementShareLimit = 0.8

// DeckValidation is the outcome of ValidateDeck. Valid is true exactly when
// Errors is empty.
type DeckValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateDeck checks a deck against the legality rules: size bounds, per-card
// copy limits (1 for legendaries, 3 otherwise) and the per-element balance of
// the creature subset. All violations accumulate; unknown card ids are
// reported once and excluded from per-card counting, but still count toward
// the deck size.
func (e *Engine) ValidateDeck(deck Deck) DeckValidation {
	var errs []string

	if len(deck.Cards) < e.rules.DeckMin || len(deck.Cards) > e.rules.DeckMax {
		errs = append(errs, fmt.Sprintf("deck must contain between %d and %d cards (got %d)",
			e.rules.DeckMin, e.rules.DeckMax, len(deck.Cards)))
	}

	copies := make(map[string]int)
	elementCounts := make(map[Element]int)
	creatureTotal := 0
	unknownReported := make(map[string]bool)

	for _, id := range deck.Cards {
		def, found := e.catalog.Lookup(id)
		if !found {
			if !unknownReported[id] {
				unknownReported[id] = true
				errs = append(errs, fmt.Sprintf("unknown card id %s", id))
			}
			continue
		}
		copies[id]++
		if def.Type == CardTypeCreature {
			creatureTotal++
			elementCounts[def.Element]++
		}
	}

	cardIDs := make([]string, 0, len(copies))
	for id := range copies {
		cardIDs = append(cardIDs, id)
	}
	sort.Strings(cardIDs)

	for _, id := range cardIDs {
		def, _ := e.catalog.Lookup(id)
		n := copies[id]
		if def.IsLegendary() {
			if n > 1 {
				errs = append(errs, fmt.Sprintf("legendary card %s limited to 1 copy (got %d)", id, n))
			}
		} else if n > e.rules.MaxCopies {
			errs = append(errs, fmt.Sprintf("card %s exceeds %d copies (got %d)", id, e.rules.MaxCopies, n))
		}
	}

	if creatureTotal > 0 {
		elements := make([]Element, 0, len(elementCounts))
		for el := range elementCounts {
			elements = append(elements, el)
		}
		sort.Slice(elements, func(i, j int) bool { return elements[i] < elements[j] })
		for _, el := range elements {
			share := float64(elementCounts[el]) / float64(creatureTotal)
			if share > elementShareLimit {
				errs = append(errs, fmt.Sprintf("element %s makes up %d%% of creatures (max 80%%)",
					el, int(math.Round(share*100))))
			}
		}
	}

	return DeckValidation{Valid: len(errs) == 0, Errors: errs}
}
