package bot

import "daifugo/internal/domain"

// Move represents the play decision made by a brain. Pass is set when no
// legal combination exists.
type Move struct {
	Pass  bool
	Cards []domain.Card
}

// GiveChoice is the response to a pending seven-give.
type GiveChoice struct {
	Cards      []domain.Card
	TargetSeat int
}

// Brain is the decision procedure a bot seat runs. Implementations read the
// round but never mutate it.
type Brain interface {
	CalculateMove(r *domain.Round, p *domain.Player) (Move, error)
	ChooseGive(r *domain.Round, p *domain.Player) (GiveChoice, error)
	ChooseDiscard(r *domain.Round, p *domain.Player) ([]domain.Card, error)
	ShouldInterrupt(r *domain.Round, p *domain.Player) bool
}
