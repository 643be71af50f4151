package app

import "errors"

// Rejected events leave the round untouched; callers re-prompt the sender.
var (
	// ErrIllegalPlay marks a play that fails combination validation or uses
	// cards the seat does not hold.
	ErrIllegalPlay = errors.New("illegal play")
	// ErrIllegalSelection marks a give/discard with the wrong card count,
	// cards outside the hand, or a missing target.
	ErrIllegalSelection = errors.New("illegal selection")
	// ErrOutOfTurn marks an event from a seat that is not allowed to act now.
	ErrOutOfTurn = errors.New("out of turn")
	// ErrWrongMode marks an event that the current round mode does not accept.
	ErrWrongMode = errors.New("wrong mode for action")
	// ErrRoundOver marks any event submitted after the round ended.
	ErrRoundOver = errors.New("round is over")
	// ErrUnknownSeat marks an event naming a seat outside the round.
	ErrUnknownSeat = errors.New("unknown seat")
	// ErrTooFewSeats rejects a reset with fewer than two seats.
	ErrTooFewSeats = errors.New("not enough seats to start")

	// ErrInvariantViolation is a programming-contract failure, never expected
	// from well-formed input: e.g. no active seat can be found for a live
	// round, or a give targets a finished player.
	ErrInvariantViolation = errors.New("round invariant violated")
)
