package game

import (
	"math/rand"

	"mcp-shooter/internal/game/geom"
)

// Enemy tuning.
const (
	EnemyMaxHealth        = 50
	EnemyMoveSpeed        = 180.0
	EnemyHitRadius        = 26.0
	EnemyContactDamage    = 20
	EnemyScoreValue       = 100
	EnemyFireInterval     = 2.0 // seconds between shots
	EnemyProjectileSpeed  = 500.0
	EnemyProjectileDamage = 10
)

// Enemy is a hostile ship that homes toward the player, fires at it on an
// interval, and damages it on contact. All mutation happens on the game
// thread.
type Enemy struct {
	Actor  *Actor
	Health int

	fireTimer float64
}

// NewEnemy spawns an enemy ship into the world at the given location. Game
// thread only.
func NewEnemy(w *World, location geom.Vector3) *Enemy {
	actor := w.SpawnActor(ActorKindEnemyShip, location, geom.Rotator{}, geom.UnitScale)
	actor.SetLabel("EnemyShip")

	return &Enemy{
		Actor:     actor,
		Health:    EnemyMaxHealth,
		fireTimer: EnemyFireInterval,
	}
}

// IsAlive reports whether the enemy still has health.
func (e *Enemy) IsAlive() bool {
	return e.Health > 0
}

// TakeDamage reduces health, clamped at zero.
func (e *Enemy) TakeDamage(amount int) {
	e.Health -= amount
	if e.Health < 0 {
		e.Health = 0
	}
}

// Update steers the enemy toward the target position. Returns true when the
// enemy wants to fire this tick; the game mode owns projectile spawning.
func (e *Enemy) Update(deltaTime float64, target geom.Vector3) bool {
	direction := target.Sub(e.Actor.Location).Normalized()
	e.Actor.Location = e.Actor.Location.Add(direction.Scale(EnemyMoveSpeed * deltaTime))
	e.Actor.Rotation.Yaw = e.Actor.Location.YawTowards(target)

	e.fireTimer -= deltaTime
	if e.fireTimer <= 0 {
		e.fireTimer = EnemyFireInterval
		return true
	}
	return false
}

// randomEdgeSpawn picks a spawn point on the top edge of the world, inset
// so the enemy starts fully inside the bounds.
func randomEdgeSpawn(worldWidth float64) geom.Vector3 {
	x := EnemyHitRadius + rand.Float64()*(worldWidth-2*EnemyHitRadius)
	return geom.Vector3{X: x, Y: EnemyHitRadius}
}
