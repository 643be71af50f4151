package domain

// Mode represents the current input mode of a round.
type Mode string

const (
	// ModeNormal accepts plays and passes from the current seat.
	ModeNormal Mode = "normal"
	// ModeAwaitingCounter is the timed window in which a 4-stop may interrupt.
	ModeAwaitingCounter Mode = "awaiting_counter"
	// ModeSevenGive waits for the current seat to pick cards and a recipient.
	ModeSevenGive Mode = "seven_give"
	// ModeTenDiscard waits for the current seat to pick cards to discard.
	ModeTenDiscard Mode = "ten_discard"
)

// Player holds the domain state for a seat in a round.
type Player struct {
	ID        int // stable seat index
	Name      string
	IsCpu     bool
	Hand      []Card
	Finished  bool
	RankTitle string // opaque label; title progression across deals is out of scope
}

// PendingCounter tracks a counterable play whose effect is deferred until the
// 4-stop window closes. WindowID changes on every opened window so a stale
// deferred resolution can recognize it has been superseded.
type PendingCounter struct {
	OriginSeat int
	Cards      []Card
	WindowID   string
	Declined   map[int]bool // seats that waived their interrupt prompt
}

// Round is the single authoritative aggregate for one deal.
type Round struct {
	Players      []*Player
	Field        []Card
	CurrentSeat  int
	PassCount    int
	LastPlaySeat int // -1 until someone has played
	Mode         Mode
	Pending      *PendingCounter
	Over         bool
	LoserSeat    int // -1 until the round ends
	Message      string
}

// ActiveSeats returns the number of players still holding cards.
func (r *Round) ActiveSeats() int {
	n := 0
	for _, p := range r.Players {
		if !p.Finished {
			n++
		}
	}
	return n
}

// PlayerAt returns the player at the given seat, or nil if the seat is out of range.
func (r *Round) PlayerAt(seat int) *Player {
	if seat < 0 || seat >= len(r.Players) {
		return nil
	}
	return r.Players[seat]
}

// NextActiveSeat returns the first non-finished seat after from, wrapping
// around. ok is false when no other active seat exists.
func (r *Round) NextActiveSeat(from int) (int, bool) {
	if len(r.Players) == 0 {
		return -1, false
	}
	next := (from + 1) % len(r.Players)
	for next != from {
		if !r.Players[next].Finished {
			return next, true
		}
		next = (next + 1) % len(r.Players)
	}
	return -1, false
}
