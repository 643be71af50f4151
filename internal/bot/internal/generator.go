package internal

import "daifugo/internal/domain"

// FirstBeating enumerates all k-card combinations of the power-sorted hand in
// lexicographic order (k = field size) and returns the first one that legally
// beats the field. Because the hand is sorted ascending, the first hit uses
// the weakest eligible cards. Returns nil when nothing beats the field.
func FirstBeating(hand []domain.Card, field []domain.Card) []domain.Card {
	sorted := make([]domain.Card, len(hand))
	copy(sorted, hand)
	domain.SortHand(sorted)

	k := len(field)
	if k == 0 || k > len(sorted) {
		return nil
	}

	var found []domain.Card
	Combinations(sorted, k, func(combo []domain.Card) bool {
		if domain.CanPlay(combo, field) {
			found = append([]domain.Card{}, combo...)
			return false
		}
		return true
	})
	return found
}

// Combinations visits every k-card combination of cards in lexicographic
// index order. The visitor returns false to stop early. The slice passed to
// the visitor is reused between calls.
func Combinations(cards []domain.Card, k int, visit func([]domain.Card) bool) {
	if k <= 0 || k > len(cards) {
		return
	}
	combo := make([]domain.Card, k)
	var walk func(start, depth int) bool
	walk = func(start, depth int) bool {
		if depth == k {
			return visit(combo)
		}
		for i := start; i <= len(cards)-(k-depth); i++ {
			combo[depth] = cards[i]
			if !walk(i+1, depth+1) {
				return false
			}
		}
		return true
	}
	walk(0, 0)
}

// LowestCards returns the n lowest-power cards of the hand.
func LowestCards(hand []domain.Card, n int) []domain.Card {
	sorted := make([]domain.Card, len(hand))
	copy(sorted, hand)
	domain.SortHand(sorted)
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// WeakestLead picks the opening card on an empty field: the single weakest
// non-joker, or the joker when the hand holds nothing else.
func WeakestLead(hand []domain.Card) []domain.Card {
	sorted := make([]domain.Card, len(hand))
	copy(sorted, hand)
	domain.SortHand(sorted)
	for _, c := range sorted {
		if !c.IsJoker() {
			return []domain.Card{c}
		}
	}
	if len(sorted) > 0 {
		return []domain.Card{sorted[0]}
	}
	return nil
}
