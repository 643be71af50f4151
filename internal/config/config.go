package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig tunes the timing behavior of a match. Durations are in seconds;
// the match handler converts them to ticks.
type GameConfig struct {
	// CounterWindowSeconds is how long a counterable play stays open to a 4-stop.
	CounterWindowSeconds int `json:"counter_window_seconds"`
	// BotThinkMinSeconds / BotThinkMaxSeconds bound the cosmetic bot delay.
	BotThinkMinSeconds int `json:"bot_think_min_seconds"`
	BotThinkMaxSeconds int `json:"bot_think_max_seconds"`
	// BotAutoFillDelaySeconds is how long a lone human waits before bots fill the table.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	// MinSeatsToStart gates the owner's start request.
	MinSeatsToStart int `json:"min_seats_to_start"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// defaults returns the shipped timing constants.
func defaults() *GameConfig {
	return &GameConfig{
		CounterWindowSeconds:    3,
		BotThinkMinSeconds:      1,
		BotThinkMaxSeconds:      3,
		BotAutoFillDelaySeconds: 5,
		MinSeatsToStart:         2,
	}
}

// LoadGameConfig loads the game configuration from the given path once.
// Missing or unreadable files leave the defaults in place.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		cfg = defaults()

		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		c.fillZero()
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, loading defaults if no
// file was ever read.
func GetGameConfig() *GameConfig {
	loadOnce.Do(func() {
		cfg = defaults()
	})
	return cfg
}

// fillZero replaces unset fields with their defaults so a partial config file
// stays usable.
func (c *GameConfig) fillZero() {
	d := defaults()
	if c.CounterWindowSeconds <= 0 {
		c.CounterWindowSeconds = d.CounterWindowSeconds
	}
	if c.BotThinkMinSeconds <= 0 {
		c.BotThinkMinSeconds = d.BotThinkMinSeconds
	}
	if c.BotThinkMaxSeconds < c.BotThinkMinSeconds {
		c.BotThinkMaxSeconds = c.BotThinkMinSeconds
	}
	if c.BotAutoFillDelaySeconds <= 0 {
		c.BotAutoFillDelaySeconds = d.BotAutoFillDelaySeconds
	}
	if c.MinSeatsToStart <= 0 {
		c.MinSeatsToStart = d.MinSeatsToStart
	}
}
