package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

// Opcodes mirrored from the server module.
const (
	OpCodeStartGame    int64 = 1
	OpCodeRoundStarted int64 = 101
	OpCodeHandDealt    int64 = 102
)

func TestFullRoundStart(t *testing.T) {
	// 1. Create 4 Clients
	clients := make([]*TestClient, 4)
	for i := 0; i < 4; i++ {
		clients[i] = NewTestClient(t)
		defer clients[i].Close()
	}
	t.Log("Created 4 clients")

	// 2. Client 0 creates a match (via quick_match RPC which creates if none found)
	matchID := clients[0].QuickMatch(t)
	t.Logf("Client 0 created/joined match: %s", matchID)

	// 3. Other clients join the SAME match
	for i := 1; i < 4; i++ {
		_, err := clients[i].Socket.JoinMatch(context.Background(), nil, matchID, nil)
		if err != nil {
			t.Fatalf("Client %d failed to join match: %v", i, err)
		}
		t.Logf("Client %d joined match", i)
	}

	// Wait a bit for presences to sync
	time.Sleep(1 * time.Second)

	// 4. Client 0 (Owner) sends StartGame
	t.Log("Client 0 sending StartGame...")
	_, err := clients[0].Socket.SendMatchState(context.Background(), matchID, OpCodeStartGame, []byte("{}"), nil)
	if err != nil {
		t.Fatalf("Failed to send StartGame: %v", err)
	}

	// 5. Assert: every client receives the round start and a private hand.
	for i, c := range clients {
		t.Logf("Waiting for RoundStarted on Client %d...", i)
		started := c.WaitForMatchState(t, OpCodeRoundStarted, 5*time.Second)

		var round struct {
			FirstTurnSeat int `json:"first_turn_seat"`
			SeatCount     int `json:"seat_count"`
		}
		if err := json.Unmarshal(started.Data, &round); err != nil {
			t.Errorf("Client %d failed to unmarshal RoundStarted: %v", i, err)
			continue
		}
		if round.SeatCount != 4 {
			t.Errorf("Client %d expected 4 seats, got %d", i, round.SeatCount)
		}

		dealt := c.WaitForMatchState(t, OpCodeHandDealt, 5*time.Second)
		var hand struct {
			Seat int `json:"seat"`
			Hand []struct {
				Suit string `json:"suit"`
				Rank int    `json:"rank"`
			} `json:"hand"`
		}
		if err := json.Unmarshal(dealt.Data, &hand); err != nil {
			t.Errorf("Client %d failed to unmarshal HandDealt: %v", i, err)
			continue
		}
		// 53 cards over 4 seats deal as 14/13/13/13
		if len(hand.Hand) != 13 && len(hand.Hand) != 14 {
			t.Errorf("Client %d expected 13 or 14 cards, got %d", i, len(hand.Hand))
		}
		t.Logf("Client %d received %d cards", i, len(hand.Hand))
	}

	t.Log("TestPassed: Round started successfully with 4 players.")
}
