// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all game and server settings.
//
// IMPORTANT: When changing defaults, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// GAME WORLD CONFIGURATION
// =============================================================================

// GameConfig holds the game world and tick loop settings.
// These values are shared between the game engine and the HTTP API.
type GameConfig struct {
	TickRate    int     // Game ticks per second
	WorldWidth  float64 // World bounds in engine units
	WorldHeight float64
}

// DefaultGame returns the default game configuration.
func DefaultGame() GameConfig {
	return GameConfig{
		TickRate:    30,
		WorldWidth:  2000,
		WorldHeight: 1200,
	}
}

// GameFromEnv returns game configuration with environment variable overrides.
// Environment variables take precedence over defaults.
func GameFromEnv() GameConfig {
	cfg := DefaultGame()

	if t := getEnvInt("GAME_TICK_RATE", 0); t > 0 {
		cfg.TickRate = t
	}
	if w := getEnvFloat("WORLD_WIDTH", 0); w > 0 {
		cfg.WorldWidth = w
	}
	if h := getEnvFloat("WORLD_HEIGHT", 0); h > 0 {
		cfg.WorldHeight = h
	}

	return cfg
}

// =============================================================================
// SHOOTER GAME MODE LIMITS
// =============================================================================

// ShooterConfig controls the spawner game mode.
type ShooterConfig struct {
	EnemySpawnInterval float64 // Seconds between enemy spawns
	MaxEnemies         int     // Hard cap on simultaneous enemies
	MaxProjectiles     int     // Hard cap on active projectiles
	RestartDelay       float64 // Seconds between game over and restart
}

// DefaultShooter returns the default shooter game mode configuration.
func DefaultShooter() ShooterConfig {
	return ShooterConfig{
		EnemySpawnInterval: 3.0,
		MaxEnemies:         10,
		MaxProjectiles:     64,
		RestartDelay:       5.0,
	}
}

// ShooterFromEnv returns shooter configuration with environment overrides.
func ShooterFromEnv() ShooterConfig {
	cfg := DefaultShooter()

	if v := getEnvFloat("ENEMY_SPAWN_INTERVAL", 0); v > 0 {
		cfg.EnemySpawnInterval = v
	}
	if v := getEnvInt("MAX_ENEMIES", 0); v > 0 {
		cfg.MaxEnemies = v
	}
	if v := getEnvInt("MAX_PROJECTILES", 0); v > 0 {
		cfg.MaxProjectiles = v
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port: 3000,
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Game    GameConfig
	Shooter ShooterConfig
	Server  ServerConfig
	MCP     MCPSettings
}

// Load returns the complete configuration with environment overrides.
// MCP server settings come from the settings document (see settings.go),
// not from environment variables.
func Load() AppConfig {
	return AppConfig{
		Game:    GameFromEnv(),
		Shooter: ShooterFromEnv(),
		Server:  ServerFromEnv(),
		MCP:     LoadMCPSettings(MCPSettingsPath()),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
