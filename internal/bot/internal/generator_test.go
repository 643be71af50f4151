package internal

import (
	"testing"

	"daifugo/internal/domain"
)

func TestCombinationsOrderAndCount(t *testing.T) {
	cards := []domain.Card{
		{Suit: domain.SuitSpades, Rank: 3},
		{Suit: domain.SuitHearts, Rank: 3},
		{Suit: domain.SuitSpades, Rank: 5},
		{Suit: domain.SuitSpades, Rank: 9},
	}

	var seen [][]domain.Card
	Combinations(cards, 2, func(combo []domain.Card) bool {
		seen = append(seen, append([]domain.Card{}, combo...))
		return true
	})

	// C(4,2) = 6 combinations in lexicographic index order
	if len(seen) != 6 {
		t.Fatalf("expected 6 combinations, got %d", len(seen))
	}
	first := seen[0]
	if first[0] != cards[0] || first[1] != cards[1] {
		t.Errorf("first combination should pair the first two cards, got %v", first)
	}
	last := seen[5]
	if last[0] != cards[2] || last[1] != cards[3] {
		t.Errorf("last combination should pair the last two cards, got %v", last)
	}
}

func TestCombinationsEarlyStop(t *testing.T) {
	cards := []domain.Card{
		{Suit: domain.SuitSpades, Rank: 3},
		{Suit: domain.SuitHearts, Rank: 4},
		{Suit: domain.SuitClubs, Rank: 5},
	}
	visits := 0
	Combinations(cards, 1, func([]domain.Card) bool {
		visits++
		return false
	})
	if visits != 1 {
		t.Errorf("visitor returning false should stop enumeration, got %d visits", visits)
	}
}

func TestFirstBeatingPrefersWeakest(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.SuitSpades, Rank: 2},
		{Suit: domain.SuitSpades, Rank: 6},
		{Suit: domain.SuitHearts, Rank: 9},
	}
	field := []domain.Card{{Suit: domain.SuitClubs, Rank: 5}}

	cards := FirstBeating(hand, field)
	if len(cards) != 1 {
		t.Fatalf("expected a single card, got %v", cards)
	}
	if cards[0].Rank != 6 {
		t.Errorf("expected the weakest winning card (6), got %v", cards[0])
	}
}

func TestFirstBeatingPairWithJoker(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.SuitSpades, Rank: 9},
		{Suit: domain.SuitJoker, Rank: domain.RankJoker},
	}
	field := []domain.Card{
		{Suit: domain.SuitClubs, Rank: 8},
		{Suit: domain.SuitHearts, Rank: 8},
	}

	cards := FirstBeating(hand, field)
	if len(cards) != 2 {
		t.Fatalf("expected joker-assisted pair, got %v", cards)
	}
}

func TestFirstBeatingNoLegalMove(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.SuitSpades, Rank: 3},
		{Suit: domain.SuitHearts, Rank: 5},
	}
	field := []domain.Card{{Suit: domain.SuitClubs, Rank: 2}}

	if cards := FirstBeating(hand, field); cards != nil {
		t.Errorf("expected no legal move, got %v", cards)
	}
}

func TestFirstBeatingRespectsFourShield(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.SuitSpades, Rank: 2},
		{Suit: domain.SuitJoker, Rank: domain.RankJoker},
	}
	field := []domain.Card{{Suit: domain.SuitDiamonds, Rank: 4}}

	if cards := FirstBeating(hand, field); cards != nil {
		t.Errorf("2 and joker are blocked by a field of 4s, got %v", cards)
	}
}

func TestWeakestLead(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.SuitJoker, Rank: domain.RankJoker},
		{Suit: domain.SuitSpades, Rank: 2},
		{Suit: domain.SuitHearts, Rank: 6},
	}
	lead := WeakestLead(hand)
	if len(lead) != 1 || lead[0].Rank != 6 {
		t.Errorf("expected weakest non-joker 6, got %v", lead)
	}

	jokerOnly := []domain.Card{{Suit: domain.SuitJoker, Rank: domain.RankJoker}}
	lead = WeakestLead(jokerOnly)
	if len(lead) != 1 || !lead[0].IsJoker() {
		t.Errorf("joker-only hand must lead the joker, got %v", lead)
	}
}

func TestLowestCards(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.SuitSpades, Rank: 2},
		{Suit: domain.SuitHearts, Rank: 3},
		{Suit: domain.SuitClubs, Rank: 9},
	}
	low := LowestCards(hand, 2)
	if len(low) != 2 || low[0].Rank != 3 || low[1].Rank != 9 {
		t.Errorf("expected [3 9], got %v", low)
	}
}
