// Package session owns battle state lifetime and serializes access to it.
// The engine itself is synchronous and assumes one mutator per battle; the
// manager provides that guarantee with one lock per battle.
package session

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/emberduel/duel-server-go/internal/battle"
)

// Session pairs a battle state with the lock that serializes access to it.
type Session struct {
	mu    sync.Mutex
	state *battle.BattleState
}

// Manager tracks active battles by id.
type Manager struct {
	logger *zap.Logger
	engine *battle.Engine

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager(engine *battle.Engine, logger *zap.Logger) *Manager {
	return &Manager{
		logger:   logger,
		engine:   engine,
		sessions: make(map[string]*Session),
	}
}

// StartBattle validates the decks, starts a battle and registers its session.
// Returns the new battle id.
func (m *Manager) StartBattle(deckA, deckB battle.Deck) (string, error) {
	state, err := m.engine.StartBattle(deckA, deckB)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.sessions[state.ID] = &Session{state: state}
	m.mu.Unlock()

	m.logger.Info("session registered",
		zap.String("battle_id", state.ID),
		zap.String("player_a", deckA.Owner),
		zap.String("player_b", deckB.Owner),
	)
	return state.ID, nil
}

// Remove drops a finished battle's session.
func (m *Manager) Remove(battleID string) {
	m.mu.Lock()
	delete(m.sessions, battleID)
	m.mu.Unlock()
}

// Players returns the player ids of a battle.
func (m *Manager) Players(battleID string) ([]string, error) {
	var ids []string
	err := m.withState(battleID, func(state *battle.BattleState) {
		for id := range state.Players {
			ids = append(ids, id)
		}
	})
	return ids, err
}

// withState runs fn under the battle's session lock.
func (m *Manager) withState(battleID string, fn func(*battle.BattleState)) error {
	m.mu.RLock()
	sess, found := m.sessions[battleID]
	m.mu.RUnlock()
	if !found {
		return fmt.Errorf("battle %s not found", battleID)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess.state)
	return nil
}

// PlayCard plays a card in the given battle.
func (m *Manager) PlayCard(battleID, playerID, cardID, target string) (battle.PlayCardResult, error) {
	var res battle.PlayCardResult
	err := m.withState(battleID, func(state *battle.BattleState) {
		res = m.engine.PlayCard(state, playerID, cardID, target)
	})
	return res, err
}

// Attack resolves an attack declaration in the given battle.
func (m *Manager) Attack(battleID, attackerInstanceID, targetID string) (battle.AttackResult, error) {
	var res battle.AttackResult
	err := m.withState(battleID, func(state *battle.BattleState) {
		res = m.engine.AttackWithCreature(state, attackerInstanceID, targetID)
	})
	return res, err
}

// ActivateTrap manually springs a trap in the given battle.
func (m *Manager) ActivateTrap(battleID, trapInstanceID string) (battle.TrapResult, error) {
	var res battle.TrapResult
	err := m.withState(battleID, func(state *battle.BattleState) {
		res = m.engine.ActivateTrap(state, trapInstanceID)
	})
	return res, err
}

// DrawCard draws a card for the player in the given battle.
func (m *Manager) DrawCard(battleID, playerID string) (battle.DrawResult, error) {
	var res battle.DrawResult
	err := m.withState(battleID, func(state *battle.BattleState) {
		res = m.engine.DrawCard(state, playerID)
	})
	return res, err
}

// ProcessTurn runs a full turn in the given battle.
func (m *Manager) ProcessTurn(battleID string, actions []battle.TurnAction) (battle.TurnResult, error) {
	var res battle.TurnResult
	err := m.withState(battleID, func(state *battle.BattleState) {
		res = m.engine.ProcessTurn(state, actions)
	})
	return res, err
}

// View returns the battle as seen by viewerID. The raw state never leaves
// the session.
func (m *Manager) View(battleID, viewerID string) (battle.BattleView, error) {
	var view battle.BattleView
	err := m.withState(battleID, func(state *battle.BattleState) {
		view = m.engine.View(state, viewerID)
	})
	return view, err
}
