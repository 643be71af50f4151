package app

import "daifugo/internal/domain"

// EventKind identifies emitted engine events for the transport layer.
type EventKind string

const (
	EventRoundStarted   EventKind = "round_started"
	EventHandDealt      EventKind = "hand_dealt"
	EventHandUpdated    EventKind = "hand_updated"
	EventCardPlayed     EventKind = "card_played"
	EventTurnPassed     EventKind = "turn_passed"
	EventFieldCleared   EventKind = "field_cleared"
	EventCounterOpened  EventKind = "counter_opened"
	EventFourStop       EventKind = "four_stop"
	EventCardsGiven     EventKind = "cards_given"
	EventCardsDiscarded EventKind = "cards_discarded"
	EventPlayerFinished EventKind = "player_finished"
	EventRoundEnded     EventKind = "round_ended"
)

// PlayEffect labels how a submitted play was classified.
type PlayEffect string

const (
	EffectNone       PlayEffect = "none"
	EffectEightFlush PlayEffect = "eight_flush"
	EffectSevenGive  PlayEffect = "seven_give"
	EffectTenDiscard PlayEffect = "ten_discard"
)

// Event is an engine event with optional targeted recipient seats.
// An empty Seats slice means broadcast.
type Event struct {
	Kind    EventKind
	Payload any
	Seats   []int
}

type RoundStartedPayload struct {
	FirstTurnSeat int
	SeatCount     int
}

type HandDealtPayload struct {
	Seat int
	Hand []domain.Card
}

// HandUpdatedPayload carries a private refresh after a give, discard or 4-stop
// changed a hand outside a normal play.
type HandUpdatedPayload struct {
	Seat int
	Hand []domain.Card
}

type CardPlayedPayload struct {
	Seat         int
	Cards        []domain.Card
	Effect       PlayEffect
	NextTurnSeat int
}

type TurnPassedPayload struct {
	Seat         int
	NextTurnSeat int
}

// FieldClearedPayload reports a round won by attrition: everyone else passed
// and the turn returns to the winner's seat.
type FieldClearedPayload struct {
	WinnerSeat   int
	NextTurnSeat int
}

type CounterOpenedPayload struct {
	OriginSeat int
	Cards      []domain.Card
	WindowID   string
}

type FourStopPayload struct {
	Seat       int
	Spent      []domain.Card
	OriginSeat int
}

type CardsGivenPayload struct {
	GiverSeat    int
	TargetSeat   int
	Count        int
	NextTurnSeat int
}

type CardsDiscardedPayload struct {
	Seat         int
	Count        int
	NextTurnSeat int
}

type PlayerFinishedPayload struct {
	Seat int
}

type RoundEndedPayload struct {
	LoserSeat int
}
