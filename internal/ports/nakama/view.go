package nakama

import (
	"daifugo/internal/bot"
	"daifugo/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// PlayerView is the public per-seat state: hand sizes only, never cards.
type PlayerView struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	DisplayName    string `json:"display_name"`
	IsBot          bool   `json:"is_bot"`
	IsOwner        bool   `json:"is_owner"`
	CardsRemaining int    `json:"cards_remaining"`
	Finished       bool   `json:"finished"`
	RankTitle      string `json:"rank_title"`
}

// MatchStateView is the snapshot broadcast after every state change.
type MatchStateView struct {
	Phase       string       `json:"phase"`
	Players     []PlayerView `json:"players"`
	Field       []CardDTO    `json:"field"`
	Mode        string       `json:"mode"`
	CurrentSeat int          `json:"current_seat"`
	Message     string       `json:"message"`
	Over        bool         `json:"over"`
	LoserSeat   int          `json:"loser_seat"`
}

// buildView renders the authoritative state with hands reduced to counts.
func buildView(state *MatchState) MatchStateView {
	view := MatchStateView{
		Phase:       "lobby",
		Mode:        string(domain.ModeNormal),
		CurrentSeat: -1,
		LoserSeat:   -1,
	}

	if state.Round == nil {
		for i, userID := range state.Seats {
			if userID == "" {
				continue
			}
			view.Players = append(view.Players, PlayerView{
				UserID:      userID,
				Seat:        i,
				DisplayName: state.displayName(userID),
				IsBot:       bot.IsBot(userID),
				IsOwner:     i == state.OwnerSeat,
			})
		}
		return view
	}

	r := state.Round
	view.Phase = "playing"
	view.Field = toWireCards(r.Field)
	view.Mode = string(r.Mode)
	view.CurrentSeat = r.CurrentSeat
	view.Message = r.Message
	view.Over = r.Over
	view.LoserSeat = r.LoserSeat
	if r.Over {
		view.Phase = "ended"
	}

	for i, p := range r.Players {
		userID := ""
		if i < len(state.RoundSeats) {
			userID = state.RoundSeats[i]
		}
		view.Players = append(view.Players, PlayerView{
			UserID:         userID,
			Seat:           p.ID,
			DisplayName:    p.Name,
			IsBot:          p.IsCpu,
			IsOwner:        userID != "" && state.seatIndexOf(userID) == state.OwnerSeat,
			CardsRemaining: len(p.Hand),
			Finished:       p.Finished,
			RankTitle:      p.RankTitle,
		})
	}
	return view
}

// displayName resolves a seat occupant's visible name from presences or bot
// profiles.
func (ms *MatchState) displayName(userID string) string {
	if p, ok := ms.Presences[userID]; ok {
		return p.GetUsername()
	}
	if name := bot.GetBotDisplayName(userID); name != "" {
		return name
	}
	return userID
}

// seatIndexOf returns the lobby seat index of a user id, or -1.
func (ms *MatchState) seatIndexOf(userID string) int {
	for i, id := range ms.Seats {
		if id == userID {
			return i
		}
	}
	return -1
}

// presencesFor maps engine seats to connected presences, skipping bots and
// absent users.
func (ms *MatchState) presencesFor(seats []int) []runtime.Presence {
	var out []runtime.Presence
	for _, seat := range seats {
		if seat < 0 || seat >= len(ms.RoundSeats) {
			continue
		}
		if p, ok := ms.Presences[ms.RoundSeats[seat]]; ok {
			out = append(out, p)
		}
	}
	return out
}
