package battle

import "fmt"

// ErrorKind is a stable classification of the recoverable rule violations an
// engine operation can report. Every public operation returns a result with
// Success=false and one of these kinds instead of a Go error; none of them is
// fatal to the battle.
type ErrorKind int

const (
	ErrNone ErrorKind = iota

	// Turn / ownership errors
	ErrBattleOver
	ErrNotYourTurn

	// Resource errors
	ErrInsufficientMana
	ErrFieldFull

	// Reference errors
	ErrUnknownCard
	ErrCardNotInHand
	ErrCreatureNotFound
	ErrTrapNotFound
	ErrPlayerNotFound

	// Rule errors
	ErrMustAttackTaunt
	ErrCannotAttack
	ErrTrapAlreadyUsed
	ErrInvalidAction
)

var errorKindNames = map[ErrorKind]string{
	ErrNone:             "NONE",
	ErrBattleOver:       "BATTLE_OVER",
	ErrNotYourTurn:      "NOT_YOUR_TURN",
	ErrInsufficientMana: "INSUFFICIENT_MANA",
	ErrFieldFull:        "FIELD_FULL",
	ErrUnknownCard:      "UNKNOWN_CARD",
	ErrCardNotInHand:    "CARD_NOT_IN_HAND",
	ErrCreatureNotFound: "CREATURE_NOT_FOUND",
	ErrTrapNotFound:     "TRAP_NOT_FOUND",
	ErrPlayerNotFound:   "PLAYER_NOT_FOUND",
	ErrMustAttackTaunt:  "MUST_ATTACK_TAUNT",
	ErrCannotAttack:     "CANNOT_ATTACK",
	ErrTrapAlreadyUsed:  "TRAP_ALREADY_USED",
	ErrInvalidAction:    "INVALID_ACTION",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ERROR_%d", int(k))
}

// Result is the common portion of every engine operation response.
type Result struct {
	Success bool      `json:"success"`
	Kind    ErrorKind `json:"-"`
	Error   string    `json:"error,omitempty"`
}

func ok() Result {
	return Result{Success: true}
}

func fail(kind ErrorKind, format string, args ...any) Result {
	return Result{Success: false, Kind: kind, Error: fmt.Sprintf(format, args...)}
}
