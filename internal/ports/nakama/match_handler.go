package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"

	"daifugo/internal/app"
	"daifugo/internal/bot"
	"daifugo/internal/config"
	"daifugo/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// tickRate is the MatchLoop frequency; all deadlines are measured in ticks.
const tickRate = 10

// MatchState holds the authoritative runtime state for one match instance.
type MatchState struct {
	Seats      [app.MaxSeats]string        // lobby seats: user id or ""
	RoundSeats []string                    // engine seat index -> user id for the live round
	OwnerSeat  int                         // lobby seat index of the match owner
	Tick       int64                       // current loop tick
	Presences  map[string]runtime.Presence // user id -> presence for targeted messaging
	Svc        *app.Service                // round engine use-cases
	Round      *domain.Round               // live round, nil while in lobby
	Bots       map[string]*bot.Agent       // bot user id -> agent

	BotsEnabled          bool
	BotThinkMinTicks     int64
	BotThinkMaxTicks     int64
	BotAutoFillTicks     int64
	BotWaitUntil         int64 // tick when the current bot seat acts; 0 = unscheduled
	LastSinglePlayerTick int64 // tick when a lone human started waiting

	// Counter window schedule. WindowID pins the schedule to one specific
	// window; an interrupt or reset supersedes it and the deadline must then
	// never fire.
	CounterWindowID string
	CounterDeadline int64
	CounterBotAt    int64
}

func (ms *MatchState) openSeatCount() int {
	n := 0
	for _, s := range ms.Seats {
		if s == "" {
			n++
		}
	}
	return n
}

func (ms *MatchState) occupiedSeatCount() int {
	return len(ms.Seats) - ms.openSeatCount()
}

func (ms *MatchState) humanCount() int {
	n := 0
	for _, s := range ms.Seats {
		if s != "" && !bot.IsBot(s) {
			n++
		}
	}
	return n
}

// firstHumanSeat returns the first lobby seat with a human occupant, or -1.
func firstHumanSeat(seats []string) int {
	for i, s := range seats {
		if s != "" && !bot.IsBot(s) {
			return i
		}
	}
	return -1
}

// engineSeatOf maps a user id to its seat in the live round, or -1.
func (ms *MatchState) engineSeatOf(userID string) int {
	for i, id := range ms.RoundSeats {
		if id == userID {
			return i
		}
	}
	return -1
}

// clearSchedules drops every pending deferred action; called whenever the
// round they would act on is replaced.
func (ms *MatchState) clearSchedules() {
	ms.BotWaitUntil = 0
	ms.CounterWindowID = ""
	ms.CounterDeadline = 0
	ms.CounterBotAt = 0
}

type matchHandler struct{}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: %v", err)
	}
	cfg := config.GetGameConfig()

	state := &MatchState{
		OwnerSeat:        -1,
		Presences:        make(map[string]runtime.Presence),
		Svc:              app.NewService(nil),
		Bots:             make(map[string]*bot.Agent),
		BotsEnabled:      true,
		BotThinkMinTicks: int64(cfg.BotThinkMinSeconds) * tickRate,
		BotThinkMaxTicks: int64(cfg.BotThinkMaxSeconds) * tickRate,
		BotAutoFillTicks: int64(cfg.BotAutoFillDelaySeconds) * tickRate,
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["daifugo_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}

	labelBytes, err := json.Marshal(Label{Open: openFlag(state), Game: GameLabelName, Phase: "lobby"})
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Rejoins are always allowed.
	if matchState.engineSeatOf(presence.GetUserId()) >= 0 || matchState.seatIndexOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}
	if matchState.Round != nil {
		return state, false, "match in progress"
	}
	if matchState.openSeatCount() == 0 {
		// a lobby bot can yield its seat to a human
		for _, seatUserID := range matchState.Seats {
			if bot.IsBot(seatUserID) {
				return state, true, ""
			}
		}
		return state, false, "match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if matchState.seatIndexOf(p.GetUserId()) >= 0 {
			continue // rejoin, seat kept
		}

		assigned := false
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}
		if !assigned && matchState.Round == nil {
			for i, seatUserID := range matchState.Seats {
				if bot.IsBot(seatUserID) {
					logger.Info("MatchJoin: replacing bot %s with human %s in seat %d", seatUserID, p.GetUserId(), i)
					delete(matchState.Bots, seatUserID)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}
		if !assigned {
			logger.Warn("MatchJoin: user %s joined but no seat was available", p.GetUserId())
		}
	}

	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = firstHumanSeat(matchState.Seats[:])
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastView(matchState, dispatcher, logger)
	return matchState
}

func openFlag(state *MatchState) string {
	if state.openSeatCount() > 0 && state.Round == nil {
		return "T"
	}
	return "F"
}

func isHumanSeat(seats []string, seat int) bool {
	if seat < 0 || seat >= len(seats) {
		return false
	}
	return seats[seat] != "" && !bot.IsBot(seats[seat])
}

func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		// Lobby seats are freed; a live round keeps the seat so the engine
		// state stays coherent and the player may rejoin.
		if matchState.Round == nil {
			if i := matchState.seatIndexOf(p.GetUserId()); i >= 0 {
				matchState.Seats[i] = ""
			}
		}
	}

	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = firstHumanSeat(matchState.Seats[:])
	}

	if firstHumanSeat(matchState.Seats[:]) == -1 {
		logger.Info("MatchLeave: terminating match with no humans")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpCodeStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpCodePlayCards:
			mh.handlePlayCards(matchState, dispatcher, logger, msg)
		case OpCodePassTurn:
			mh.handlePassTurn(matchState, dispatcher, logger, msg)
		case OpCodeGiveCards:
			mh.handleGiveCards(matchState, dispatcher, logger, msg)
		case OpCodeDiscardCards:
			mh.handleDiscardCards(matchState, dispatcher, logger, msg)
		case OpCodeFourStop:
			mh.handleFourStop(matchState, dispatcher, logger, msg)
		case OpCodeDeclineStop:
			mh.handleDeclineStop(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: unknown opcode %d", msg.GetOpCode())
		}
	}

	mh.runCounterSchedule(matchState, dispatcher, logger)
	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}

	return matchState
}

// runCounterSchedule drives the 4-stop window: eligible bots interrupt at the
// half-window mark (lowest seat first); otherwise the deferred effect fires
// at the deadline. A schedule whose window id no longer matches the round is
// stale and is dropped without firing.
func (mh *matchHandler) runCounterSchedule(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Round == nil || state.CounterWindowID == "" {
		return
	}
	r := state.Round

	if r.Over || r.Mode != domain.ModeAwaitingCounter || r.Pending == nil || r.Pending.WindowID != state.CounterWindowID {
		state.CounterWindowID = ""
		state.CounterDeadline = 0
		state.CounterBotAt = 0
		return
	}

	if state.CounterBotAt != 0 && state.Tick >= state.CounterBotAt {
		state.CounterBotAt = 0
		for seat := 0; seat < len(r.Players); seat++ {
			userID := state.RoundSeats[seat]
			agent, isAgent := state.Bots[userID]
			if !isAgent || !agent.WantsInterrupt(r, seat) {
				continue
			}
			events, err := state.Svc.Interrupt(r, seat)
			if err != nil {
				logger.Error("runCounterSchedule: bot %s interrupt failed: %v", userID, err)
				break
			}
			mh.dispatchEvents(state, dispatcher, logger, events)
			mh.broadcastView(state, dispatcher, logger)
			return
		}
	}

	if state.Tick >= state.CounterDeadline {
		windowID := state.CounterWindowID
		state.CounterWindowID = ""
		state.CounterDeadline = 0
		state.CounterBotAt = 0

		events, err := state.Svc.ResolveCounterWindow(r, windowID)
		if err != nil {
			logger.Error("runCounterSchedule: resolve failed: %v", err)
			return
		}
		mh.dispatchEvents(state, dispatcher, logger, events)
		mh.broadcastView(state, dispatcher, logger)
	}
}

// processBots fills a lone human's lobby with bots and runs the current bot
// seat after its cosmetic think delay.
func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Round == nil {
		mh.autoFillLobby(state, dispatcher, logger)
		return
	}

	r := state.Round
	if r.Over || r.Mode == domain.ModeAwaitingCounter {
		state.BotWaitUntil = 0
		return
	}

	seat := r.CurrentSeat
	userID := state.RoundSeats[seat]
	agent, isAgent := state.Bots[userID]
	if !isAgent {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		span := state.BotThinkMaxTicks - state.BotThinkMinTicks + 1
		state.BotWaitUntil = state.Tick + state.BotThinkMinTicks + rand.Int63n(span)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	var events []app.Event
	var err error
	switch r.Mode {
	case domain.ModeSevenGive:
		var choice bot.GiveChoice
		choice, err = agent.GiveAtSeat(r, seat)
		if err == nil {
			events, err = state.Svc.GiveCards(r, seat, choice.Cards, choice.TargetSeat)
		}
	case domain.ModeTenDiscard:
		var cards []domain.Card
		cards, err = agent.DiscardAtSeat(r, seat)
		if err == nil {
			events, err = state.Svc.DiscardCards(r, seat, cards)
		}
	default:
		var move bot.Move
		move, err = agent.PlayAtSeat(r, seat)
		if err == nil {
			if move.Pass {
				events, err = state.Svc.SubmitPass(r, seat)
			} else {
				events, err = state.Svc.SubmitPlay(r, seat, move.Cards)
			}
		}
	}
	if err != nil {
		logger.Error("processBots: bot %s at seat %d failed: %v", userID, seat, err)
		return
	}

	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.broadcastView(state, dispatcher, logger)
}

func (mh *matchHandler) autoFillLobby(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.humanCount() != 1 {
		state.LastSinglePlayerTick = 0
		return
	}
	if state.LastSinglePlayerTick == 0 {
		state.LastSinglePlayerTick = state.Tick
		return
	}
	if state.Tick-state.LastSinglePlayerTick < state.BotAutoFillTicks {
		return
	}
	state.LastSinglePlayerTick = 0

	added := false
	for i, seatUserID := range state.Seats {
		if seatUserID != "" {
			continue
		}
		identity := bot.GetBotIdentity(i)
		agent, err := bot.NewAgent(identity.UserID)
		if err != nil {
			logger.Error("autoFillLobby: failed to create bot agent: %v", err)
			continue
		}
		state.Seats[i] = identity.UserID
		state.Bots[identity.UserID] = agent
		logger.Info("autoFillLobby: added bot %s to seat %d", identity.DisplayName, i)
		added = true
	}
	if added {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastView(state, dispatcher, logger)
	}
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := state.seatIndexOf(msg.GetUserId())
	if senderSeat != state.OwnerSeat {
		logger.Warn("handleStartGame: %s is not the owner", msg.GetUserId())
		return
	}
	if state.Round != nil && !state.Round.Over {
		logger.Warn("handleStartGame: round already in progress")
		return
	}
	if state.occupiedSeatCount() < config.GetGameConfig().MinSeatsToStart {
		logger.Warn("handleStartGame: not enough players")
		return
	}

	var cfg []app.SeatConfig
	var roundSeats []string
	for _, userID := range state.Seats {
		if userID == "" {
			continue
		}
		cfg = append(cfg, app.SeatConfig{
			Name:  state.displayName(userID),
			IsCpu: bot.IsBot(userID),
		})
		roundSeats = append(roundSeats, userID)
	}

	round, events, err := state.Svc.ResetRound(cfg)
	if err != nil {
		logger.Error("handleStartGame: %v", err)
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), err)
		return
	}

	state.Round = round
	state.RoundSeats = roundSeats
	state.clearSchedules()

	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.broadcastView(state, dispatcher, logger)
}

func (mh *matchHandler) handlePlayCards(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.senderSeat(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	var req PlayCardsRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handlePlayCards: bad payload from %s: %v", msg.GetUserId(), err)
		return
	}
	events, err := state.Svc.SubmitPlay(state.Round, seat, fromWireCards(req.Cards))
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.broadcastView(state, dispatcher, logger)
}

func (mh *matchHandler) handlePassTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.senderSeat(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	events, err := state.Svc.SubmitPass(state.Round, seat)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.broadcastView(state, dispatcher, logger)
}

func (mh *matchHandler) handleGiveCards(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.senderSeat(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	var req GiveCardsRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleGiveCards: bad payload from %s: %v", msg.GetUserId(), err)
		return
	}
	events, err := state.Svc.GiveCards(state.Round, seat, fromWireCards(req.Cards), req.TargetSeat)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.broadcastView(state, dispatcher, logger)
}

func (mh *matchHandler) handleDiscardCards(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.senderSeat(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	var req DiscardCardsRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleDiscardCards: bad payload from %s: %v", msg.GetUserId(), err)
		return
	}
	events, err := state.Svc.DiscardCards(state.Round, seat, fromWireCards(req.Cards))
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.broadcastView(state, dispatcher, logger)
}

func (mh *matchHandler) handleFourStop(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.senderSeat(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	events, err := state.Svc.Interrupt(state.Round, seat)
	if err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.broadcastView(state, dispatcher, logger)
}

func (mh *matchHandler) handleDeclineStop(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	seat, ok := mh.senderSeat(state, dispatcher, logger, msg)
	if !ok {
		return
	}
	if _, err := state.Svc.DeclineInterrupt(state.Round, seat); err != nil {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), err)
	}
}

// senderSeat resolves the sender's engine seat, rejecting messages outside a
// live round.
func (mh *matchHandler) senderSeat(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) (int, bool) {
	if state.Round == nil {
		logger.Warn("senderSeat: no round in progress for %s", msg.GetUserId())
		return -1, false
	}
	seat := state.engineSeatOf(msg.GetUserId())
	if seat < 0 {
		mh.sendError(state, dispatcher, logger, msg.GetUserId(), app.ErrUnknownSeat)
		return -1, false
	}
	return seat, true
}

// dispatchEvents converts engine events to wire messages. The counter window
// schedule is armed here, and a finished round drops back to the lobby after
// its final broadcast.
func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	roundEnded := false
	for _, ev := range events {
		opCode, payload := mh.wirePayload(state, ev)
		if payload == nil {
			continue
		}
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Error("dispatchEvents: failed to marshal %s: %v", ev.Kind, err)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Seats) > 0 {
			recipients = state.presencesFor(ev.Seats)
			// targeted events for disconnected or bot seats must not leak
			// to everyone else
			if len(recipients) == 0 {
				continue
			}
		}
		dispatcher.BroadcastMessage(opCode, data, recipients, nil, true)

		if ev.Kind == app.EventCounterOpened {
			p := ev.Payload.(app.CounterOpenedPayload)
			windowTicks := int64(config.GetGameConfig().CounterWindowSeconds) * tickRate
			state.CounterWindowID = p.WindowID
			state.CounterDeadline = state.Tick + windowTicks
			state.CounterBotAt = state.Tick + windowTicks/2
		}
		if ev.Kind == app.EventRoundEnded {
			roundEnded = true
		}
	}

	if roundEnded {
		mh.broadcastView(state, dispatcher, logger)
		state.Round = nil
		state.RoundSeats = nil
		state.clearSchedules()
		mh.updateLabel(state, dispatcher, logger)
	}
}

// wirePayload maps an engine event onto its opcode and wire struct.
func (mh *matchHandler) wirePayload(state *MatchState, ev app.Event) (int64, any) {
	switch ev.Kind {
	case app.EventRoundStarted:
		p := ev.Payload.(app.RoundStartedPayload)
		return OpCodeRoundStarted, RoundStartedEvent{FirstTurnSeat: p.FirstTurnSeat, SeatCount: p.SeatCount}
	case app.EventHandDealt:
		p := ev.Payload.(app.HandDealtPayload)
		return OpCodeHandDealt, HandDealtEvent{Seat: p.Seat, Hand: toWireCards(p.Hand)}
	case app.EventHandUpdated:
		p := ev.Payload.(app.HandUpdatedPayload)
		return OpCodeHandUpdated, HandUpdatedEvent{Seat: p.Seat, Hand: toWireCards(p.Hand)}
	case app.EventCardPlayed:
		p := ev.Payload.(app.CardPlayedPayload)
		return OpCodeCardPlayed, CardPlayedEvent{Seat: p.Seat, Cards: toWireCards(p.Cards), Effect: string(p.Effect), NextTurnSeat: p.NextTurnSeat}
	case app.EventTurnPassed:
		p := ev.Payload.(app.TurnPassedPayload)
		return OpCodeTurnPassed, TurnPassedEvent{Seat: p.Seat, NextTurnSeat: p.NextTurnSeat}
	case app.EventFieldCleared:
		p := ev.Payload.(app.FieldClearedPayload)
		return OpCodeFieldCleared, FieldClearedEvent{WinnerSeat: p.WinnerSeat, NextTurnSeat: p.NextTurnSeat}
	case app.EventCounterOpened:
		p := ev.Payload.(app.CounterOpenedPayload)
		return OpCodeCounterOpened, CounterOpenedEvent{OriginSeat: p.OriginSeat, Cards: toWireCards(p.Cards), WindowSeconds: config.GetGameConfig().CounterWindowSeconds}
	case app.EventFourStop:
		p := ev.Payload.(app.FourStopPayload)
		return OpCodeFourStopDone, FourStopEvent{Seat: p.Seat, Spent: toWireCards(p.Spent), OriginSeat: p.OriginSeat}
	case app.EventCardsGiven:
		p := ev.Payload.(app.CardsGivenPayload)
		return OpCodeCardsGiven, CardsGivenEvent{GiverSeat: p.GiverSeat, TargetSeat: p.TargetSeat, Count: p.Count, NextTurnSeat: p.NextTurnSeat}
	case app.EventCardsDiscarded:
		p := ev.Payload.(app.CardsDiscardedPayload)
		return OpCodeCardsDiscarded, CardsDiscardedEvent{Seat: p.Seat, Count: p.Count, NextTurnSeat: p.NextTurnSeat}
	case app.EventPlayerFinished:
		p := ev.Payload.(app.PlayerFinishedPayload)
		return OpCodePlayerFinished, PlayerFinishedEvent{Seat: p.Seat}
	case app.EventRoundEnded:
		p := ev.Payload.(app.RoundEndedPayload)
		return OpCodeRoundEnded, RoundEndedEvent{LoserSeat: p.LoserSeat}
	default:
		return 0, nil
	}
}

func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, cause error) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	data, err := json.Marshal(GameErrorEvent{Code: errorCode(cause), Message: cause.Error()})
	if err != nil {
		logger.Error("sendError: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpCodeGameError, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) broadcastView(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	data, err := json.Marshal(buildView(state))
	if err != nil {
		logger.Error("broadcastView: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpCodeMatchState, data, nil, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Round != nil {
		phase = "playing"
	}
	data, err := json.Marshal(Label{Open: openFlag(state), Game: GameLabelName, Phase: phase})
	if err != nil {
		logger.Error("updateLabel: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(data)); err != nil {
		logger.Error("updateLabel: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
