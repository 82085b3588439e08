package config

import "testing"

func TestGameFromEnvDefaults(t *testing.T) {
	cfg := GameFromEnv()

	if cfg != DefaultGame() {
		t.Errorf("GameFromEnv() = %+v, want defaults %+v", cfg, DefaultGame())
	}
}

func TestGameFromEnvOverrides(t *testing.T) {
	t.Setenv("GAME_TICK_RATE", "60")
	t.Setenv("WORLD_WIDTH", "3000")

	cfg := GameFromEnv()
	if cfg.TickRate != 60 {
		t.Errorf("TickRate = %d, want 60", cfg.TickRate)
	}
	if cfg.WorldWidth != 3000 {
		t.Errorf("WorldWidth = %g, want 3000", cfg.WorldWidth)
	}
	if cfg.WorldHeight != DefaultGame().WorldHeight {
		t.Errorf("WorldHeight = %g, want default", cfg.WorldHeight)
	}
}

func TestGameFromEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("GAME_TICK_RATE", "not-a-number")

	cfg := GameFromEnv()
	if cfg.TickRate != DefaultGame().TickRate {
		t.Errorf("TickRate = %d, want default on invalid env", cfg.TickRate)
	}
}

func TestShooterFromEnvOverrides(t *testing.T) {
	t.Setenv("ENEMY_SPAWN_INTERVAL", "1.5")
	t.Setenv("MAX_ENEMIES", "25")

	cfg := ShooterFromEnv()
	if cfg.EnemySpawnInterval != 1.5 {
		t.Errorf("EnemySpawnInterval = %g, want 1.5", cfg.EnemySpawnInterval)
	}
	if cfg.MaxEnemies != 25 {
		t.Errorf("MaxEnemies = %d, want 25", cfg.MaxEnemies)
	}
}

func TestServerFromEnvOverride(t *testing.T) {
	t.Setenv("PORT", "8088")

	cfg := ServerFromEnv()
	if cfg.Port != 8088 {
		t.Errorf("Port = %d, want 8088", cfg.Port)
	}
}
