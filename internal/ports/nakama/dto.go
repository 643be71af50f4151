package nakama

import (
	"daifugo/internal/app"
	"daifugo/internal/domain"
)

// Client -> server opcodes.
const (
	OpCodeStartGame    int64 = 1
	OpCodePlayCards    int64 = 2
	OpCodePassTurn     int64 = 3
	OpCodeGiveCards    int64 = 4
	OpCodeDiscardCards int64 = 5
	OpCodeFourStop     int64 = 6
	OpCodeDeclineStop  int64 = 7
)

// Server -> client opcodes.
const (
	OpCodeMatchState     int64 = 100
	OpCodeRoundStarted   int64 = 101
	OpCodeHandDealt      int64 = 102
	OpCodeCardPlayed     int64 = 103
	OpCodeTurnPassed     int64 = 104
	OpCodeFieldCleared   int64 = 105
	OpCodeCounterOpened  int64 = 106
	OpCodeFourStopDone   int64 = 107
	OpCodeCardsGiven     int64 = 108
	OpCodeCardsDiscarded int64 = 109
	OpCodeHandUpdated    int64 = 110
	OpCodePlayerFinished int64 = 111
	OpCodeRoundEnded     int64 = 112
	OpCodeGameError      int64 = 113
)

// CardDTO is the wire form of a card.
type CardDTO struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
}

func toWireCards(cards []domain.Card) []CardDTO {
	out := make([]CardDTO, 0, len(cards))
	for _, c := range cards {
		out = append(out, CardDTO{Suit: string(c.Suit), Rank: c.Rank})
	}
	return out
}

func fromWireCards(cards []CardDTO) []domain.Card {
	out := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, domain.Card{Suit: domain.Suit(c.Suit), Rank: c.Rank})
	}
	return out
}

// PlayCardsRequest asks to play cards from the sender's hand.
type PlayCardsRequest struct {
	Cards []CardDTO `json:"cards"`
}

// GiveCardsRequest resolves a pending seven-give.
type GiveCardsRequest struct {
	Cards      []CardDTO `json:"cards"`
	TargetSeat int       `json:"target_seat"`
}

// DiscardCardsRequest resolves a pending ten-discard.
type DiscardCardsRequest struct {
	Cards []CardDTO `json:"cards"`
}

// Label is the advertised match label for quick-match queries. Open is "T"
// while at least one seat is free.
type Label struct {
	Open  string `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// Wire payloads for engine events.

type RoundStartedEvent struct {
	FirstTurnSeat int `json:"first_turn_seat"`
	SeatCount     int `json:"seat_count"`
}

type HandDealtEvent struct {
	Seat int       `json:"seat"`
	Hand []CardDTO `json:"hand"`
}

type HandUpdatedEvent struct {
	Seat int       `json:"seat"`
	Hand []CardDTO `json:"hand"`
}

type CardPlayedEvent struct {
	Seat         int       `json:"seat"`
	Cards        []CardDTO `json:"cards"`
	Effect       string    `json:"effect"`
	NextTurnSeat int       `json:"next_turn_seat"`
}

type TurnPassedEvent struct {
	Seat         int `json:"seat"`
	NextTurnSeat int `json:"next_turn_seat"`
}

type FieldClearedEvent struct {
	WinnerSeat   int `json:"winner_seat"`
	NextTurnSeat int `json:"next_turn_seat"`
}

type CounterOpenedEvent struct {
	OriginSeat    int       `json:"origin_seat"`
	Cards         []CardDTO `json:"cards"`
	WindowSeconds int       `json:"window_seconds"`
}

type FourStopEvent struct {
	Seat       int       `json:"seat"`
	Spent      []CardDTO `json:"spent"`
	OriginSeat int       `json:"origin_seat"`
}

type CardsGivenEvent struct {
	GiverSeat    int `json:"giver_seat"`
	TargetSeat   int `json:"target_seat"`
	Count        int `json:"count"`
	NextTurnSeat int `json:"next_turn_seat"`
}

type CardsDiscardedEvent struct {
	Seat         int `json:"seat"`
	Count        int `json:"count"`
	NextTurnSeat int `json:"next_turn_seat"`
}

type PlayerFinishedEvent struct {
	Seat int `json:"seat"`
}

type RoundEndedEvent struct {
	LoserSeat int `json:"loser_seat"`
}

type GameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errorCode maps engine rejections onto stable wire codes.
func errorCode(err error) int {
	switch err {
	case app.ErrIllegalPlay:
		return 1001
	case app.ErrIllegalSelection:
		return 1002
	case app.ErrOutOfTurn:
		return 1003
	case app.ErrWrongMode:
		return 1004
	case app.ErrRoundOver:
		return 1005
	case app.ErrUnknownSeat:
		return 1006
	case app.ErrTooFewSeats:
		return 1007
	default:
		return 1500
	}
}
