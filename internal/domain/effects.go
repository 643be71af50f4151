package domain

// allRankOrJoker reports whether every card is the given rank or a joker.
func allRankOrJoker(cards []Card, rank int) bool {
	if len(cards) == 0 {
		return false
	}
	for _, c := range cards {
		if !c.IsJoker() && c.Rank != rank {
			return false
		}
	}
	return true
}

// IsEightFlush reports whether the play clears the field and grants the same
// player another turn. Jokers count as 8s.
func IsEightFlush(cards []Card) bool {
	return allRankOrJoker(cards, 8)
}

// IsSevenGive reports whether the play forces the player to pass the same
// number of cards to another active player.
func IsSevenGive(cards []Card) bool {
	return allRankOrJoker(cards, 7)
}

// IsTenDiscard reports whether the play forces the player to discard the same
// number of cards from their own hand.
func IsTenDiscard(cards []Card) bool {
	return allRankOrJoker(cards, 10)
}

// IsCounterablePlay reports whether the play opens the 4-stop window before
// its effect resolves: one or two cards whose non-joker rank is 7, 8 or 10.
// A pure joker play of that size is not counterable.
func IsCounterablePlay(cards []Card) bool {
	if len(cards) == 0 || len(cards) > 2 {
		return false
	}
	switch representativeRank(cards) {
	case 7, 8, 10:
		return true
	}
	return false
}

// CanPerformFourStop reports whether the hand can pay the 4-stop cost of two
// rank-4 cards.
func CanPerformFourStop(hand []Card) bool {
	fours := 0
	for _, c := range hand {
		if c.Rank == 4 {
			fours++
		}
	}
	return fours >= 2
}

// FourStopCost picks the two rank-4 cards a 4-stop consumes from the hand.
// The returned slice is nil when the hand cannot pay.
func FourStopCost(hand []Card) []Card {
	var fours []Card
	for _, c := range hand {
		if c.Rank == 4 {
			fours = append(fours, c)
			if len(fours) == 2 {
				return fours
			}
		}
	}
	return nil
}
