package bot

import "daifugo/internal/domain"

// Agent binds a bot identity to a strategy for one seat.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// PlayAtSeat asks the agent for its move at the given seat.
func (a *Agent) PlayAtSeat(r *domain.Round, seat int) (Move, error) {
	p := r.PlayerAt(seat)
	if p == nil || len(p.Hand) == 0 {
		return Move{Pass: true}, nil
	}
	move, err := a.Strategy.CalculateMove(r, p)
	if err != nil {
		return Move{Pass: true}, err
	}
	return move, nil
}

// GiveAtSeat asks the agent which cards to hand over and to whom for a
// pending seven-give.
func (a *Agent) GiveAtSeat(r *domain.Round, seat int) (GiveChoice, error) {
	p := r.PlayerAt(seat)
	if p == nil {
		return GiveChoice{TargetSeat: -1}, nil
	}
	return a.Strategy.ChooseGive(r, p)
}

// DiscardAtSeat asks the agent which cards to discard for a pending ten-discard.
func (a *Agent) DiscardAtSeat(r *domain.Round, seat int) ([]domain.Card, error) {
	p := r.PlayerAt(seat)
	if p == nil {
		return nil, nil
	}
	return a.Strategy.ChooseDiscard(r, p)
}

// WantsInterrupt reports whether the agent performs a 4-stop during an open
// counter window.
func (a *Agent) WantsInterrupt(r *domain.Round, seat int) bool {
	p := r.PlayerAt(seat)
	if p == nil {
		return false
	}
	return a.Strategy.ShouldInterrupt(r, p)
}
