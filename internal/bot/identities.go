package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// botIDPrefix marks generated bot user ids so seat occupants can be
// recognized without a lookup.
const botIDPrefix = "bot-"

// BotIdentity is one profile from the bot identity file.
type BotIdentity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"`
	AvatarIndex int    `json:"avatar_index"`
}

// Level maps the configured difficulty onto a strategy level. Every
// difficulty currently runs the standard strategy.
func (b BotIdentity) Level() BotLevel {
	return BotLevelStandard
}

var defaultBotNames = []string{"CPU Taro", "CPU Hanako", "CPU Jiro", "CPU Yuki"}

var (
	botIdentities []BotIdentity
	botConfigMap  map[string]BotIdentity
	loadOnce      sync.Once
	loadErr       error
)

// LoadIdentities loads bot profiles from the given path. Missing files fall
// back to built-in identities with generated ids so a bare deployment still
// fields opponents.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			useDefaultIdentities()
			loadErr = fmt.Errorf("bot identities unavailable, using defaults: %w", err)
			return
		}
		if err := json.Unmarshal(data, &botIdentities); err != nil {
			useDefaultIdentities()
			loadErr = fmt.Errorf("bad bot identities file, using defaults: %w", err)
			return
		}
		botConfigMap = make(map[string]BotIdentity, len(botIdentities))
		for i := range botIdentities {
			if botIdentities[i].UserID == "" {
				botIdentities[i].UserID = botIDPrefix + uuid.NewString()
			}
			botConfigMap[botIdentities[i].UserID] = botIdentities[i]
		}
	})
	return loadErr
}

func useDefaultIdentities() {
	botIdentities = make([]BotIdentity, 0, len(defaultBotNames))
	botConfigMap = make(map[string]BotIdentity, len(defaultBotNames))
	for i, name := range defaultBotNames {
		identity := BotIdentity{
			UserID:      botIDPrefix + uuid.NewString(),
			Username:    name,
			DisplayName: name,
			Difficulty:  "standard",
			AvatarIndex: i,
		}
		botIdentities = append(botIdentities, identity)
		botConfigMap[identity.UserID] = identity
	}
}

// GetBotIdentity returns the profile assigned to the given seat index,
// cycling when more seats than profiles exist.
func GetBotIdentity(seat int) BotIdentity {
	ensureLoaded()
	return botIdentities[seat%len(botIdentities)]
}

// GetBotIdentityByID looks up a profile by bot user id.
func GetBotIdentityByID(userID string) (BotIdentity, bool) {
	ensureLoaded()
	identity, ok := botConfigMap[userID]
	return identity, ok
}

// GetBotDisplayName returns the display name for a bot id, or "" for humans.
func GetBotDisplayName(userID string) string {
	ensureLoaded()
	if identity, ok := botConfigMap[userID]; ok {
		return identity.DisplayName
	}
	return ""
}

// IsBot reports whether the user id belongs to a bot seat.
func IsBot(userID string) bool {
	if strings.HasPrefix(userID, botIDPrefix) {
		return true
	}
	ensureLoaded()
	_, ok := botConfigMap[userID]
	return ok
}

func ensureLoaded() {
	loadOnce.Do(func() {
		useDefaultIdentities()
	})
}
