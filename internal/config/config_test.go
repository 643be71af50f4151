package config

import "testing"

func TestDefaultsAreSane(t *testing.T) {
	c := defaults()
	if c.CounterWindowSeconds != 3 {
		t.Errorf("counter window default = %d, want 3", c.CounterWindowSeconds)
	}
	if c.BotThinkMinSeconds > c.BotThinkMaxSeconds {
		t.Errorf("think delay bounds inverted: %d > %d", c.BotThinkMinSeconds, c.BotThinkMaxSeconds)
	}
	if c.MinSeatsToStart < 2 {
		t.Errorf("min seats default = %d, want at least 2", c.MinSeatsToStart)
	}
}

func TestFillZero(t *testing.T) {
	c := &GameConfig{BotThinkMinSeconds: 2}
	c.fillZero()
	if c.CounterWindowSeconds != 3 {
		t.Errorf("unset counter window should default to 3, got %d", c.CounterWindowSeconds)
	}
	if c.BotThinkMaxSeconds != 2 {
		t.Errorf("max think below min should clamp to min, got %d", c.BotThinkMaxSeconds)
	}
}
