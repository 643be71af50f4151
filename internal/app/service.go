package app

import (
	"fmt"
	"math/rand"
	"time"

	"daifugo/internal/domain"

	"github.com/google/uuid"
)

// SeatConfig describes one seat of a new round, supplied by the lobby layer.
type SeatConfig struct {
	Name  string
	IsCpu bool
}

// Service contains the round use-cases operating on the domain aggregate.
// Every method processes one event to completion; rejected events leave the
// round untouched.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// ResetRound deals a fresh round for the given seats. The holder of the
// diamond 3 opens; with 53 cards dealt that card is always in some hand, but
// seat 0 remains the guard fallback.
func (s *Service) ResetRound(cfg []SeatConfig) (*domain.Round, []Event, error) {
	if len(cfg) < MinSeatsToStart || len(cfg) > MaxSeats {
		return nil, nil, ErrTooFewSeats
	}

	hands := domain.Deal(domain.Shuffle(domain.NewDeck(), s.rng), len(cfg))

	players := make([]*domain.Player, len(cfg))
	for i, sc := range cfg {
		players[i] = &domain.Player{
			ID:        i,
			Name:      sc.Name,
			IsCpu:     sc.IsCpu,
			Hand:      hands[i],
			RankTitle: DefaultRankTitle,
		}
	}

	first := 0
	for i, p := range players {
		if domain.ContainsAll(p.Hand, []domain.Card{{Suit: domain.SuitDiamonds, Rank: 3}}) {
			first = i
			break
		}
	}

	round := &domain.Round{
		Players:      players,
		CurrentSeat:  first,
		LastPlaySeat: -1,
		Mode:         domain.ModeNormal,
		LoserSeat:    -1,
		Message:      fmt.Sprintf("%s's turn to start!", players[first].Name),
	}

	events := make([]Event, 0, len(players)+1)
	events = append(events, Event{
		Kind:    EventRoundStarted,
		Payload: RoundStartedPayload{FirstTurnSeat: first, SeatCount: len(players)},
	})
	for _, p := range players {
		events = append(events, Event{
			Kind:    EventHandDealt,
			Payload: HandDealtPayload{Seat: p.ID, Hand: p.Hand},
			Seats:   []int{p.ID},
		})
	}
	return round, events, nil
}

// SubmitPlay validates and applies a play from the current seat. Counterable
// plays open the 4-stop window instead of resolving their effect.
func (s *Service) SubmitPlay(r *domain.Round, seat int, cards []domain.Card) ([]Event, error) {
	if r.Over {
		return nil, ErrRoundOver
	}
	if r.Mode != domain.ModeNormal {
		return nil, ErrWrongMode
	}
	p := r.PlayerAt(seat)
	if p == nil {
		return nil, ErrUnknownSeat
	}
	if seat != r.CurrentSeat {
		return nil, ErrOutOfTurn
	}
	if !domain.ContainsAll(p.Hand, cards) {
		return nil, ErrIllegalPlay
	}
	if !domain.CanPlay(cards, r.Field) {
		return nil, ErrIllegalPlay
	}

	p.Hand = domain.RemoveCards(p.Hand, cards)

	var events []Event
	if len(p.Hand) == 0 {
		p.Finished = true
		r.Message = fmt.Sprintf("%s has finished!", p.Name)
		events = append(events, Event{Kind: EventPlayerFinished, Payload: PlayerFinishedPayload{Seat: seat}})
	}

	if domain.IsCounterablePlay(cards) {
		r.Field = cards
		r.PassCount = 0
		r.Mode = domain.ModeAwaitingCounter
		r.Pending = &domain.PendingCounter{
			OriginSeat: seat,
			Cards:      cards,
			WindowID:   uuid.NewString(),
			Declined:   make(map[int]bool),
		}
		r.Message = "Waiting for a 4-stop..."
		events = append(events,
			Event{Kind: EventCardPlayed, Payload: CardPlayedPayload{
				Seat: seat, Cards: cards, Effect: classifyEffect(cards), NextTurnSeat: seat,
			}},
			Event{Kind: EventCounterOpened, Payload: CounterOpenedPayload{
				OriginSeat: seat, Cards: cards, WindowID: r.Pending.WindowID,
			}},
		)
		return events, nil
	}

	resolved, err := s.resolveEffect(r, seat, cards)
	if err != nil {
		return nil, err
	}
	events = append(events, Event{Kind: EventCardPlayed, Payload: CardPlayedPayload{
		Seat: seat, Cards: cards, Effect: classifyEffect(cards), NextTurnSeat: r.CurrentSeat,
	}})
	events = append(events, resolved...)
	return events, nil
}

// SubmitPass increments the pass counter; once every other active player has
// passed, the field clears and the turn returns to the last player to play.
func (s *Service) SubmitPass(r *domain.Round, seat int) ([]Event, error) {
	if r.Over {
		return nil, ErrRoundOver
	}
	if r.Mode != domain.ModeNormal {
		return nil, ErrWrongMode
	}
	if r.PlayerAt(seat) == nil {
		return nil, ErrUnknownSeat
	}
	if seat != r.CurrentSeat {
		return nil, ErrOutOfTurn
	}

	active := r.ActiveSeats()
	if r.PassCount+1 >= active-1 && r.LastPlaySeat >= 0 {
		winner := r.LastPlaySeat
		r.Field = nil
		r.PassCount = 0

		ret := winner
		if r.Players[winner].Finished {
			// the round winner already emptied their hand; the fresh field
			// opens at the next active seat after them
			next, ok := r.NextActiveSeat(winner)
			if !ok {
				return nil, ErrInvariantViolation
			}
			ret = next
		}
		r.CurrentSeat = ret
		r.Message = fmt.Sprintf("%s won the round and starts again.", r.Players[winner].Name)
		return []Event{
			{Kind: EventTurnPassed, Payload: TurnPassedPayload{Seat: seat, NextTurnSeat: ret}},
			{Kind: EventFieldCleared, Payload: FieldClearedPayload{WinnerSeat: winner, NextTurnSeat: ret}},
		}, nil
	}

	r.PassCount++
	next, ok := r.NextActiveSeat(seat)
	if !ok {
		return nil, ErrInvariantViolation
	}
	r.CurrentSeat = next
	r.Message = fmt.Sprintf("%s's turn", r.Players[next].Name)
	return []Event{
		{Kind: EventTurnPassed, Payload: TurnPassedPayload{Seat: seat, NextTurnSeat: next}},
	}, nil
}

// GiveCards resolves a pending seven-give: the giver transfers the selected
// cards to an active target seat, whose hand is re-sorted by power.
func (s *Service) GiveCards(r *domain.Round, seat int, cards []domain.Card, targetSeat int) ([]Event, error) {
	if r.Over {
		return nil, ErrRoundOver
	}
	if r.Mode != domain.ModeSevenGive {
		return nil, ErrWrongMode
	}
	p := r.PlayerAt(seat)
	if p == nil {
		return nil, ErrUnknownSeat
	}
	if seat != r.CurrentSeat {
		return nil, ErrOutOfTurn
	}
	target := r.PlayerAt(targetSeat)
	if target == nil || targetSeat == seat {
		return nil, ErrIllegalSelection
	}
	if target.Finished {
		return nil, ErrInvariantViolation
	}
	if len(cards) != SelectionCount(r, seat) || !domain.ContainsAll(p.Hand, cards) {
		return nil, ErrIllegalSelection
	}

	p.Hand = domain.RemoveCards(p.Hand, cards)
	target.Hand = append(target.Hand, cards...)
	domain.SortHand(target.Hand)

	events := []Event{
		{Kind: EventHandUpdated, Payload: HandUpdatedPayload{Seat: seat, Hand: p.Hand}, Seats: []int{seat}},
		{Kind: EventHandUpdated, Payload: HandUpdatedPayload{Seat: targetSeat, Hand: target.Hand}, Seats: []int{targetSeat}},
	}
	if len(p.Hand) == 0 {
		p.Finished = true
		events = append(events, Event{Kind: EventPlayerFinished, Payload: PlayerFinishedPayload{Seat: seat}})
	}

	r.Mode = domain.ModeNormal
	r.PassCount = 0
	r.LastPlaySeat = seat
	r.Message = fmt.Sprintf("%s gave %d card(s) to %s.", p.Name, len(cards), target.Name)

	next, ended, err := s.advanceOrEnd(r, seat)
	if err != nil {
		return nil, err
	}
	events = append(events, Event{Kind: EventCardsGiven, Payload: CardsGivenPayload{
		GiverSeat: seat, TargetSeat: targetSeat, Count: len(cards), NextTurnSeat: next,
	}})
	if ended {
		events = append(events, Event{Kind: EventRoundEnded, Payload: RoundEndedPayload{LoserSeat: r.LoserSeat}})
	}
	return events, nil
}

// DiscardCards resolves a pending ten-discard: the selected cards leave the
// game permanently.
func (s *Service) DiscardCards(r *domain.Round, seat int, cards []domain.Card) ([]Event, error) {
	if r.Over {
		return nil, ErrRoundOver
	}
	if r.Mode != domain.ModeTenDiscard {
		return nil, ErrWrongMode
	}
	p := r.PlayerAt(seat)
	if p == nil {
		return nil, ErrUnknownSeat
	}
	if seat != r.CurrentSeat {
		return nil, ErrOutOfTurn
	}
	if len(cards) != SelectionCount(r, seat) || !domain.ContainsAll(p.Hand, cards) {
		return nil, ErrIllegalSelection
	}

	p.Hand = domain.RemoveCards(p.Hand, cards)

	events := []Event{
		{Kind: EventHandUpdated, Payload: HandUpdatedPayload{Seat: seat, Hand: p.Hand}, Seats: []int{seat}},
	}
	if len(p.Hand) == 0 {
		p.Finished = true
		events = append(events, Event{Kind: EventPlayerFinished, Payload: PlayerFinishedPayload{Seat: seat}})
	}

	r.Mode = domain.ModeNormal
	r.PassCount = 0
	r.LastPlaySeat = seat
	r.Message = fmt.Sprintf("%s discarded %d card(s).", p.Name, len(cards))

	next, ended, err := s.advanceOrEnd(r, seat)
	if err != nil {
		return nil, err
	}
	events = append(events, Event{Kind: EventCardsDiscarded, Payload: CardsDiscardedPayload{
		Seat: seat, Count: len(cards), NextTurnSeat: next,
	}})
	if ended {
		events = append(events, Event{Kind: EventRoundEnded, Payload: RoundEndedPayload{LoserSeat: r.LoserSeat}})
	}
	return events, nil
}

// Interrupt performs a 4-stop during the counter window: two rank-4 cards are
// spent, the field clears, the pending effect is cancelled and the
// interrupter seizes the turn.
func (s *Service) Interrupt(r *domain.Round, seat int) ([]Event, error) {
	if r.Over {
		return nil, ErrRoundOver
	}
	if r.Mode != domain.ModeAwaitingCounter || r.Pending == nil {
		return nil, ErrWrongMode
	}
	p := r.PlayerAt(seat)
	if p == nil {
		return nil, ErrUnknownSeat
	}
	if p.Finished || seat == r.Pending.OriginSeat {
		return nil, ErrOutOfTurn
	}
	cost := domain.FourStopCost(p.Hand)
	if cost == nil {
		return nil, ErrIllegalPlay
	}

	origin := r.Pending.OriginSeat
	p.Hand = domain.RemoveCards(p.Hand, cost)

	r.Pending = nil
	r.Mode = domain.ModeNormal
	r.Field = nil
	r.PassCount = 0
	r.LastPlaySeat = seat
	r.Message = fmt.Sprintf("%s performs a 4-Stop! They start the next round.", p.Name)

	events := []Event{
		{Kind: EventFourStop, Payload: FourStopPayload{Seat: seat, Spent: cost, OriginSeat: origin}},
		{Kind: EventHandUpdated, Payload: HandUpdatedPayload{Seat: seat, Hand: p.Hand}, Seats: []int{seat}},
	}

	if len(p.Hand) == 0 {
		p.Finished = true
		events = append(events, Event{Kind: EventPlayerFinished, Payload: PlayerFinishedPayload{Seat: seat}})
		_, ended, err := s.advanceOrEnd(r, seat)
		if err != nil {
			return nil, err
		}
		if ended {
			events = append(events, Event{Kind: EventRoundEnded, Payload: RoundEndedPayload{LoserSeat: r.LoserSeat}})
		}
		return events, nil
	}

	r.CurrentSeat = seat
	return events, nil
}

// DeclineInterrupt records that a seat waived its 4-stop prompt. It never
// shortens the window.
func (s *Service) DeclineInterrupt(r *domain.Round, seat int) ([]Event, error) {
	if r.Over {
		return nil, ErrRoundOver
	}
	if r.Mode != domain.ModeAwaitingCounter || r.Pending == nil {
		return nil, ErrWrongMode
	}
	if r.PlayerAt(seat) == nil {
		return nil, ErrUnknownSeat
	}
	r.Pending.Declined[seat] = true
	return nil, nil
}

// ResolveCounterWindow applies the deferred effect of a counterable play once
// its window elapses. A stale window id means the window was superseded by an
// interrupt or a reset; the call is then a silent no-op.
func (s *Service) ResolveCounterWindow(r *domain.Round, windowID string) ([]Event, error) {
	if r.Over || r.Mode != domain.ModeAwaitingCounter || r.Pending == nil || r.Pending.WindowID != windowID {
		return nil, nil
	}

	seat := r.Pending.OriginSeat
	cards := r.Pending.Cards
	r.Pending = nil
	r.Mode = domain.ModeNormal

	return s.resolveEffect(r, seat, cards)
}

// resolveEffect applies the classified effect of an accepted play. It is
// shared by the synchronous path and the deferred counter-window path; the
// precedence is eight-flush, then seven-give/ten-discard, then an ordinary
// field update. Special selection modes are skipped when the player has no
// cards left to select.
func (s *Service) resolveEffect(r *domain.Round, seat int, cards []domain.Card) ([]Event, error) {
	p := r.PlayerAt(seat)
	if p == nil {
		return nil, ErrInvariantViolation
	}

	switch {
	case domain.IsEightFlush(cards):
		r.Field = nil
		r.PassCount = 0
		r.LastPlaySeat = seat
		if p.Finished {
			_, ended, err := s.advanceOrEnd(r, seat)
			if err != nil {
				return nil, err
			}
			if ended {
				return []Event{{Kind: EventRoundEnded, Payload: RoundEndedPayload{LoserSeat: r.LoserSeat}}}, nil
			}
			return nil, nil
		}
		r.CurrentSeat = seat
		r.Message = "8-Flush! Play again."
		return nil, nil

	case domain.IsSevenGive(cards) && len(p.Hand) > 0:
		r.Field = cards
		r.Mode = domain.ModeSevenGive
		r.Message = fmt.Sprintf("%s, choose %d card(s) and another player to give them to.", p.Name, SelectionCount(r, seat))
		return nil, nil

	case domain.IsTenDiscard(cards) && len(p.Hand) > 0:
		r.Field = cards
		r.Mode = domain.ModeTenDiscard
		r.Message = fmt.Sprintf("%s, choose %d card(s) from your hand to discard.", p.Name, SelectionCount(r, seat))
		return nil, nil

	default:
		r.Field = cards
		r.LastPlaySeat = seat
		r.PassCount = 0
		next, ended, err := s.advanceOrEnd(r, seat)
		if err != nil {
			return nil, err
		}
		if ended {
			return []Event{{Kind: EventRoundEnded, Payload: RoundEndedPayload{LoserSeat: r.LoserSeat}}}, nil
		}
		r.Message = fmt.Sprintf("%s's turn", r.Players[next].Name)
		return nil, nil
	}
}

// advanceOrEnd moves the turn to the next active seat after from, or ends the
// round when at most one active seat remains. The returned seat is -1 when
// the round ended.
func (s *Service) advanceOrEnd(r *domain.Round, from int) (int, bool, error) {
	if r.ActiveSeats() <= 1 {
		s.endRound(r)
		return -1, true, nil
	}
	next, ok := r.NextActiveSeat(from)
	if !ok {
		return -1, false, ErrInvariantViolation
	}
	r.CurrentSeat = next
	return next, false, nil
}

// endRound marks the round over with the last remaining active seat as loser.
func (s *Service) endRound(r *domain.Round) {
	r.Over = true
	r.Mode = domain.ModeNormal
	r.Pending = nil
	r.LoserSeat = -1
	for _, p := range r.Players {
		if !p.Finished {
			r.LoserSeat = p.ID
			break
		}
	}
	if r.LoserSeat >= 0 {
		r.Message = fmt.Sprintf("Game over! %s is the loser.", r.Players[r.LoserSeat].Name)
	} else {
		r.Message = "Game over!"
	}
}

// SelectionCount is how many cards the current seat must pick for a pending
// give or discard: the played count, capped by what the hand still holds.
func SelectionCount(r *domain.Round, seat int) int {
	p := r.PlayerAt(seat)
	if p == nil {
		return 0
	}
	n := len(r.Field)
	if len(p.Hand) < n {
		n = len(p.Hand)
	}
	return n
}

func classifyEffect(cards []domain.Card) PlayEffect {
	switch {
	case domain.IsEightFlush(cards):
		return EffectEightFlush
	case domain.IsSevenGive(cards):
		return EffectSevenGive
	case domain.IsTenDiscard(cards):
		return EffectTenDiscard
	default:
		return EffectNone
	}
}
