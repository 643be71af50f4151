package domain

import "fmt"

// Suit identifies a card suit. The joker carries its own suit.
type Suit string

const (
	SuitSpades   Suit = "S"
	SuitHearts   Suit = "H"
	SuitDiamonds Suit = "D"
	SuitClubs    Suit = "C"
	SuitJoker    Suit = "X"
)

// Rank values follow the printed card faces: 3..10, 11=J, 12=Q, 13=K, 1=A, 2.
// The joker uses RankJoker.
const RankJoker = 0

// JokerPower is strictly above every ranked card.
const JokerPower = 99

// Card is a single card in the 53-card Daifugo deck. Identity is suit+rank;
// at most one joker exists.
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"`
}

// IsJoker reports whether the card is the joker.
func (c Card) IsJoker() bool {
	return c.Suit == SuitJoker
}

// Power returns the climbing strength of the card: 3 is weakest (1), then
// 4..K, A, 2 (13); the joker is strongest of all.
func (c Card) Power() int {
	if c.IsJoker() {
		return JokerPower
	}
	switch c.Rank {
	case 1:
		return 12
	case 2:
		return 13
	default:
		return c.Rank - 2
	}
}

func (c Card) String() string {
	if c.IsJoker() {
		return "Joker"
	}
	r := fmt.Sprintf("%d", c.Rank)
	switch c.Rank {
	case 1:
		r = "A"
	case 11:
		r = "J"
	case 12:
		r = "Q"
	case 13:
		r = "K"
	}
	return r + string(c.Suit)
}
