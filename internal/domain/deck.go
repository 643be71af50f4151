package domain

import (
	"math/rand"
	"sort"
)

// deckRanks is the suit-major construction order: 3..K, then A and 2.
var deckRanks = []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 1, 2}

// NewDeck returns the fixed 53-card deck: four ranked suits followed by the joker.
func NewDeck() []Card {
	suits := []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}
	deck := make([]Card, 0, 53)
	for _, s := range suits {
		for _, r := range deckRanks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	deck = append(deck, Card{Suit: SuitJoker, Rank: RankJoker})
	return deck
}

// Shuffle returns a Fisher-Yates permutation of the deck without mutating the
// input. Pass a seeded rng for deterministic deals.
func Shuffle(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal distributes the deck round-robin into n hands, each sorted ascending by
// power. Hand sizes differ by at most one.
func Deal(deck []Card, n int) [][]Card {
	hands := make([][]Card, n)
	for i, c := range deck {
		hands[i%n] = append(hands[i%n], c)
	}
	for _, h := range hands {
		SortHand(h)
	}
	return hands
}

// SortHand orders a hand by ascending power in place.
func SortHand(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Power() < cards[j].Power()
	})
}

// RemoveCards returns hand minus the given cards, removing each at most once.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	removeCounts := make(map[Card]int, len(toRemove))
	for _, c := range toRemove {
		removeCounts[c]++
	}

	updated := make([]Card, 0, len(hand))
	for _, c := range hand {
		if n, ok := removeCounts[c]; ok && n > 0 {
			removeCounts[c] = n - 1
			continue
		}
		updated = append(updated, c)
	}
	return updated
}

// ContainsAll reports whether the hand holds every one of the given cards.
func ContainsAll(hand []Card, cards []Card) bool {
	counts := make(map[Card]int, len(hand))
	for _, c := range hand {
		counts[c]++
	}
	for _, c := range cards {
		if counts[c] == 0 {
			return false
		}
		counts[c]--
	}
	return true
}
