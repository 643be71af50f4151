package bot

import "fmt"

// BotLevel selects a strategy for a bot seat.
type BotLevel int

const (
	// BotLevelStandard is the default shipped strategy.
	BotLevelStandard BotLevel = iota
)

// NewBrain creates a strategy for the given level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelStandard:
		return &StandardBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent for the given bot user id using its configured
// identity and difficulty.
func NewAgent(userID string) (*Agent, error) {
	identity, ok := GetBotIdentityByID(userID)
	if !ok {
		return nil, fmt.Errorf("unknown bot user id: %s", userID)
	}
	brain, err := NewBrain(identity.Level())
	if err != nil {
		return nil, err
	}
	return &Agent{ID: identity.UserID, Name: identity.DisplayName, Strategy: brain}, nil
}
