package nakama

import (
	"encoding/json"
	"testing"

	"daifugo/internal/app"
	"daifugo/internal/bot"
	"daifugo/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// stubPresence satisfies runtime.Presence for seat occupants in tests.
type stubPresence struct {
	userID   string
	username string
}

func (p stubPresence) GetUserId() string                 { return p.userID }
func (p stubPresence) GetSessionId() string              { return "session-" + p.userID }
func (p stubPresence) GetNodeId() string                 { return "node" }
func (p stubPresence) GetHidden() bool                   { return false }
func (p stubPresence) GetPersistence() bool              { return true }
func (p stubPresence) GetUsername() string               { return p.username }
func (p stubPresence) GetStatus() string                 { return "" }
func (p stubPresence) GetReason() runtime.PresenceReason { return runtime.PresenceReasonUnknown }

// stubMatchData is a client message as seen by MatchLoop.
type stubMatchData struct {
	stubPresence
	opCode int64
	data   []byte
}

func (m stubMatchData) GetOpCode() int64      { return m.opCode }
func (m stubMatchData) GetData() []byte       { return m.data }
func (m stubMatchData) GetReliable() bool     { return true }
func (m stubMatchData) GetReceiveTime() int64 { return 0 }

type broadcast struct {
	opCode     int64
	data       []byte
	recipients int
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcasts   []broadcast
	labelUpdates int
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcasts = append(md.broadcasts, broadcast{
		opCode:     opCode,
		data:       append([]byte(nil), data...),
		recipients: len(presences),
	})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	return nil
}

func (md *mockDispatcher) opCodes() []int64 {
	out := make([]int64, 0, len(md.broadcasts))
	for _, b := range md.broadcasts {
		out = append(out, b.opCode)
	}
	return out
}

func (md *mockDispatcher) contains(opCode int64) bool {
	for _, b := range md.broadcasts {
		if b.opCode == opCode {
			return true
		}
	}
	return false
}

func newTestState() *MatchState {
	return &MatchState{
		OwnerSeat:        -1,
		Presences:        make(map[string]runtime.Presence),
		Svc:              app.NewService(nil),
		Bots:             make(map[string]*bot.Agent),
		BotsEnabled:      true,
		BotThinkMinTicks: 0,
		BotThinkMaxTicks: 0,
		BotAutoFillTicks: 2,
	}
}

func joinHuman(state *MatchState, userID string) {
	for i, s := range state.Seats {
		if s == "" {
			state.Seats[i] = userID
			break
		}
	}
	state.Presences[userID] = stubPresence{userID: userID, username: userID}
	if state.OwnerSeat == -1 {
		state.OwnerSeat = state.seatIndexOf(userID)
	}
}

func TestFirstHumanSeat(t *testing.T) {
	bot1 := bot.GetBotIdentity(0).UserID
	bot2 := bot.GetBotIdentity(1).UserID

	tests := []struct {
		name  string
		seats []string
		want  int
	}{
		{
			name:  "FirstHumanAfterBot",
			seats: []string{bot1, "user-1", "", ""},
			want:  1,
		},
		{
			name:  "AllBots",
			seats: []string{bot1, bot2, "", ""},
			want:  -1,
		},
		{
			name:  "AllEmpty",
			seats: []string{"", "", "", ""},
			want:  -1,
		},
		{
			name:  "FirstHumanIsSeatZero",
			seats: []string{"user-1", bot1, "user-2", ""},
			want:  0,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := firstHumanSeat(test.seats); got != test.want {
				t.Fatalf("firstHumanSeat() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestHandleStartGame_DealsAndBroadcasts(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState()
	joinHuman(state, "user-1")
	joinHuman(state, "user-2")

	msg := stubMatchData{stubPresence: stubPresence{userID: "user-1"}, opCode: OpCodeStartGame}
	handler.handleStartGame(state, dispatcher, noopLogger{}, msg)

	if state.Round == nil {
		t.Fatalf("Expected a round to start")
	}
	if len(state.RoundSeats) != 2 {
		t.Fatalf("Expected 2 round seats, got %d", len(state.RoundSeats))
	}
	if !dispatcher.contains(OpCodeRoundStarted) {
		t.Fatalf("Expected round started broadcast, got opcodes %v", dispatcher.opCodes())
	}
	if dispatcher.labelUpdates == 0 {
		t.Fatalf("Expected label update when leaving the lobby")
	}

	handDeals := 0
	for _, b := range dispatcher.broadcasts {
		if b.opCode == OpCodeHandDealt {
			handDeals++
			if b.recipients != 1 {
				t.Fatalf("Hand deal must be targeted to one presence, got %d", b.recipients)
			}
		}
	}
	if handDeals != 2 {
		t.Fatalf("Expected 2 targeted hand deals, got %d", handDeals)
	}
}

func TestHandleStartGame_RejectsNonOwner(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState()
	joinHuman(state, "user-1")
	joinHuman(state, "user-2")

	msg := stubMatchData{stubPresence: stubPresence{userID: "user-2"}, opCode: OpCodeStartGame}
	handler.handleStartGame(state, dispatcher, noopLogger{}, msg)

	if state.Round != nil {
		t.Fatalf("Non-owner must not start the round")
	}
}

// counterRound builds a round frozen in the middle of a counter window.
func counterRound(windowID string, botHand []domain.Card) *domain.Round {
	field := []domain.Card{{Suit: domain.SuitSpades, Rank: 8}}
	return &domain.Round{
		Players: []*domain.Player{
			{ID: 0, Name: "origin", Hand: []domain.Card{{Suit: domain.SuitHearts, Rank: 5}}},
			{ID: 1, Name: "other", Hand: botHand},
		},
		Field:        field,
		CurrentSeat:  0,
		LastPlaySeat: -1,
		Mode:         domain.ModeAwaitingCounter,
		Pending: &domain.PendingCounter{
			OriginSeat: 0,
			Cards:      field,
			WindowID:   windowID,
			Declined:   make(map[int]bool),
		},
		LoserSeat: -1,
	}
}

func TestRunCounterSchedule_ResolvesAtDeadline(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState()
	state.Round = counterRound("w1", []domain.Card{{Suit: domain.SuitClubs, Rank: 9}})
	state.RoundSeats = []string{"user-1", "user-2"}
	state.CounterWindowID = "w1"
	state.CounterDeadline = 5
	state.Tick = 10

	handler.runCounterSchedule(state, dispatcher, noopLogger{})

	r := state.Round
	if r.Mode != domain.ModeNormal {
		t.Fatalf("Expected deferred eight-flush to resolve, mode = %s", r.Mode)
	}
	if len(r.Field) != 0 {
		t.Fatalf("Eight-flush must clear the field, got %v", r.Field)
	}
	if r.CurrentSeat != 0 {
		t.Fatalf("Eight-flush must retain the origin's turn, got seat %d", r.CurrentSeat)
	}
	if state.CounterWindowID != "" || state.CounterDeadline != 0 {
		t.Fatalf("Schedule must be cleared after resolution")
	}
}

func TestRunCounterSchedule_DropsStaleWindow(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState()
	state.Round = counterRound("w2", nil)
	state.RoundSeats = []string{"user-1", "user-2"}
	state.CounterWindowID = "w1" // superseded
	state.CounterDeadline = 5
	state.Tick = 10

	handler.runCounterSchedule(state, dispatcher, noopLogger{})

	if state.Round.Mode != domain.ModeAwaitingCounter {
		t.Fatalf("A stale schedule must never resolve the live window")
	}
	if state.CounterWindowID != "" {
		t.Fatalf("Stale schedule must be dropped")
	}
	if len(dispatcher.broadcasts) != 0 {
		t.Fatalf("Stale schedule must not broadcast, got %v", dispatcher.opCodes())
	}
}

func TestRunCounterSchedule_BotInterrupts(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState()

	botID := bot.GetBotIdentity(0).UserID
	agent, err := bot.NewAgent(botID)
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	state.Bots[botID] = agent

	botHand := []domain.Card{
		{Suit: domain.SuitSpades, Rank: 4},
		{Suit: domain.SuitHearts, Rank: 4},
		{Suit: domain.SuitClubs, Rank: 11},
	}
	state.Round = counterRound("w1", botHand)
	state.RoundSeats = []string{"user-1", botID}
	state.CounterWindowID = "w1"
	state.CounterDeadline = 30
	state.CounterBotAt = 15
	state.Tick = 15

	handler.runCounterSchedule(state, dispatcher, noopLogger{})

	r := state.Round
	if r.Mode != domain.ModeNormal || r.Pending != nil {
		t.Fatalf("Expected the bot to cancel the window with a 4-stop")
	}
	if r.CurrentSeat != 1 {
		t.Fatalf("Interrupter must seize the turn, got seat %d", r.CurrentSeat)
	}
	if got := len(r.Players[1].Hand); got != 1 {
		t.Fatalf("Interrupt must spend two fours, hand size = %d", got)
	}
	if !dispatcher.contains(OpCodeFourStopDone) {
		t.Fatalf("Expected 4-stop broadcast, got opcodes %v", dispatcher.opCodes())
	}
}

func TestAutoFillLobby_AddsBotsForSoloHuman(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState()
	joinHuman(state, "user-1")
	state.LastSinglePlayerTick = 8
	state.Tick = 10

	handler.autoFillLobby(state, dispatcher, noopLogger{})

	botCount := 0
	for _, seat := range state.Seats {
		if bot.IsBot(seat) {
			botCount++
		}
	}
	if botCount != 3 {
		t.Fatalf("Expected 3 bots after auto-fill, got %d", botCount)
	}
	if state.LastSinglePlayerTick != 0 {
		t.Fatalf("Expected auto-fill timer reset, got %d", state.LastSinglePlayerTick)
	}
	if dispatcher.labelUpdates == 0 {
		t.Fatalf("Expected label update after auto-fill")
	}
}

func TestMatchLabel_Marshal(t *testing.T) {
	tests := []struct {
		name     string
		label    Label
		expected string
	}{
		{
			name:     "OpenLobby",
			label:    Label{Open: "T", Game: GameLabelName, Phase: "lobby"},
			expected: `{"open":"T","game":"daifugo","phase":"lobby"}`,
		},
		{
			name:     "Playing",
			label:    Label{Open: "F", Game: GameLabelName, Phase: "playing"},
			expected: `{"open":"F","game":"daifugo","phase":"playing"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			payload, err := json.Marshal(test.label)
			if err != nil {
				t.Fatalf("Failed to marshal label: %v", err)
			}
			if string(payload) != test.expected {
				t.Errorf("Got %s, want %s", payload, test.expected)
			}
		})
	}
}

func TestSendError_TargetsOnlyTheSender(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState()
	joinHuman(state, "user-1")

	handler.sendError(state, dispatcher, noopLogger{}, "user-1", app.ErrOutOfTurn)

	if len(dispatcher.broadcasts) != 1 {
		t.Fatalf("Expected exactly one error message, got %d", len(dispatcher.broadcasts))
	}
	b := dispatcher.broadcasts[0]
	if b.opCode != OpCodeGameError || b.recipients != 1 {
		t.Fatalf("Error must go to the sender only: opcode %d, recipients %d", b.opCode, b.recipients)
	}

	var wire GameErrorEvent
	if err := json.Unmarshal(b.data, &wire); err != nil {
		t.Fatalf("Failed to unmarshal error payload: %v", err)
	}
	if wire.Code != 1003 {
		t.Fatalf("Expected out-of-turn code 1003, got %d", wire.Code)
	}
}
