package bot

import (
	"daifugo/internal/bot/internal"
	"daifugo/internal/domain"
)

// StandardBot is the shipped opponent: it opens with its weakest card and
// otherwise answers with the first (weakest) legal combination of matching
// size. Give and discard selections spend the lowest-power cards; gives
// target the active opponent closest to finishing.
type StandardBot struct{}

func (b *StandardBot) CalculateMove(r *domain.Round, p *domain.Player) (Move, error) {
	if p == nil || len(p.Hand) == 0 {
		return Move{Pass: true}, nil
	}

	if len(r.Field) == 0 {
		lead := internal.WeakestLead(p.Hand)
		if lead == nil {
			return Move{Pass: true}, nil
		}
		return Move{Cards: lead}, nil
	}

	cards := internal.FirstBeating(p.Hand, r.Field)
	if cards == nil {
		return Move{Pass: true}, nil
	}
	return Move{Cards: cards}, nil
}

func (b *StandardBot) ChooseGive(r *domain.Round, p *domain.Player) (GiveChoice, error) {
	target := -1
	fewest := -1
	for _, other := range r.Players {
		if other.ID == p.ID || other.Finished {
			continue
		}
		if fewest == -1 || len(other.Hand) < fewest {
			fewest = len(other.Hand)
			target = other.ID
		}
	}
	return GiveChoice{
		Cards:      internal.LowestCards(p.Hand, selectionCount(r, p)),
		TargetSeat: target,
	}, nil
}

func (b *StandardBot) ChooseDiscard(r *domain.Round, p *domain.Player) ([]domain.Card, error) {
	return internal.LowestCards(p.Hand, selectionCount(r, p)), nil
}

func (b *StandardBot) ShouldInterrupt(r *domain.Round, p *domain.Player) bool {
	if r.Pending == nil || p.Finished || p.ID == r.Pending.OriginSeat {
		return false
	}
	return domain.CanPerformFourStop(p.Hand)
}

// selectionCount mirrors the engine's selection rule: played count capped by
// what the hand still holds.
func selectionCount(r *domain.Round, p *domain.Player) int {
	n := len(r.Field)
	if len(p.Hand) < n {
		n = len(p.Hand)
	}
	return n
}
