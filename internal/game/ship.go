package game

import (
	"mcp-shooter/internal/game/geom"
)

// Player ship tuning. The ship fires at most FireRate shots per second and
// dies when Health reaches zero.
const (
	PlayerMaxHealth  = 100
	PlayerFireRate   = 2.0 // shots per second
	PlayerMoveSpeed  = 450.0
	PlayerHitRadius  = 28.0
	ProjectileSpeed  = 900.0
	ProjectileDamage = 25
)

// PlayerShip is the player-controlled pawn. All mutation happens on the game
// thread.
type PlayerShip struct {
	Actor *Actor

	Health    int
	MaxHealth int
	FireRate  float64

	// Input intents, applied each tick. Range [-1, 1].
	MoveX  float64
	MoveY  float64
	Firing bool

	fireCooldown float64
}

// NewPlayerShip spawns a player ship into the world at the given location.
// Game thread only.
func NewPlayerShip(w *World, location geom.Vector3) *PlayerShip {
	actor := w.SpawnActor(ActorKindPlayerShip, location, geom.Rotator{}, geom.UnitScale)
	actor.SetLabel("PlayerShip")

	return &PlayerShip{
		Actor:     actor,
		Health:    PlayerMaxHealth,
		MaxHealth: PlayerMaxHealth,
		FireRate:  PlayerFireRate,
	}
}

// IsAlive reports whether the ship still has health.
func (p *PlayerShip) IsAlive() bool {
	return p.Health > 0
}

// TakeDamage reduces health, clamped at zero.
func (p *PlayerShip) TakeDamage(amount int) {
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
}

// SetInput replaces the movement and fire intents applied on the next tick.
func (p *PlayerShip) SetInput(moveX, moveY float64, firing bool) {
	p.MoveX = clampAxis(moveX)
	p.MoveY = clampAxis(moveY)
	p.Firing = firing
}

// Update advances movement and the fire cooldown. Returns true when the ship
// wants to fire this tick; the game mode owns projectile spawning.
func (p *PlayerShip) Update(deltaTime, worldWidth, worldHeight float64) bool {
	if !p.IsAlive() {
		return false
	}

	p.Actor.Location.X += p.MoveX * PlayerMoveSpeed * deltaTime
	p.Actor.Location.Y += p.MoveY * PlayerMoveSpeed * deltaTime
	p.Actor.Location.X = clamp(p.Actor.Location.X, PlayerHitRadius, worldWidth-PlayerHitRadius)
	p.Actor.Location.Y = clamp(p.Actor.Location.Y, PlayerHitRadius, worldHeight-PlayerHitRadius)

	if p.fireCooldown > 0 {
		p.fireCooldown -= deltaTime
	}

	if p.Firing && p.fireCooldown <= 0 {
		p.fireCooldown = 1.0 / p.FireRate
		return true
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampAxis(v float64) float64 {
	return clamp(v, -1, 1)
}
