package domain

// representativePower is the effective power of a same-rank set: jokers adopt
// the power of the non-joker rank they accompany, and an all-joker set keeps
// the joker's own power.
func representativePower(cards []Card) int {
	for _, c := range cards {
		if !c.IsJoker() {
			return c.Power()
		}
	}
	return JokerPower
}

// representativeRank returns the non-joker rank of a set, or RankJoker for an
// all-joker set.
func representativeRank(cards []Card) int {
	for _, c := range cards {
		if !c.IsJoker() {
			return c.Rank
		}
	}
	return RankJoker
}

// sameRankSet reports whether every non-joker card shares one rank.
func sameRankSet(cards []Card) bool {
	rank := -1
	for _, c := range cards {
		if c.IsJoker() {
			continue
		}
		if rank == -1 {
			rank = c.Rank
			continue
		}
		if c.Rank != rank {
			return false
		}
	}
	return true
}

// CanPlay reports whether the candidate cards legally beat the current field.
// An empty field accepts any same-rank(+joker) set of any size; otherwise the
// play must match the field's size and exceed its power. A field of 4s is
// shielded: no play containing a 2 or the joker can beat it, regardless of
// power.
func CanPlay(played, field []Card) bool {
	if len(played) == 0 {
		return false
	}
	if !sameRankSet(played) {
		return false
	}
	if len(field) == 0 {
		return true
	}
	if len(played) != len(field) {
		return false
	}

	if representativeRank(field) == 4 {
		for _, c := range played {
			if c.Rank == 2 || c.IsJoker() {
				return false
			}
		}
	}

	return representativePower(played) > representativePower(field)
}
