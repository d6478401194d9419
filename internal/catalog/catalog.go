// Package catalog holds the static card reference data. The catalog is
// immutable: the engine looks definitions up by id and never writes back.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/emberduel/duel-server-go/internal/battle"
)

//go:embed cards.yaml
var cardsYAML []byte

type cardFile struct {
	Cards []battle.CardDefinition `yaml:"cards"`
}

// Catalog is an in-memory card table keyed by card id.
type Catalog struct {
	cards map[string]battle.CardDefinition
}

// Load parses the embedded card data.
func Load() (*Catalog, error) {
	return Parse(cardsYAML)
}

// Parse builds a catalog from raw YAML. Exposed for servers that ship their
// own card set.
func Parse(data []byte) (*Catalog, error) {
	var file cardFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing card data: %w", err)
	}
	if len(file.Cards) == 0 {
		return nil, fmt.Errorf("card data contains no cards")
	}

	cards := make(map[string]battle.CardDefinition, len(file.Cards))
	for _, def := range file.Cards {
		if def.ID == "" {
			return nil, fmt.Errorf("card %q has no id", def.Name)
		}
		if _, dup := cards[def.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %s", def.ID)
		}
		switch def.Type {
		case battle.CardTypeCreature, battle.CardTypeSpell, battle.CardTypeTrap,
			battle.CardTypeEquipment, battle.CardTypeLegendary:
		default:
			return nil, fmt.Errorf("card %s has unknown type %q", def.ID, def.Type)
		}
		cards[def.ID] = def
	}
	return &Catalog{cards: cards}, nil
}

// Lookup returns the definition for a card id.
func (c *Catalog) Lookup(id string) (battle.CardDefinition, bool) {
	def, found := c.cards[id]
	return def, found
}

// Size returns the number of cards in the catalog.
func (c *Catalog) Size() int {
	return len(c.cards)
}
