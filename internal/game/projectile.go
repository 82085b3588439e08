package game

import (
	"mcp-shooter/internal/game/geom"
)

// projectileLifetime bounds how long a shot lives before despawning off
// screen, in seconds.
const projectileLifetime = 2.0

// Projectile is a shot in flight. Hostile marks enemy fire: hostile shots
// hit only the player, friendly shots only enemies. All mutation happens on
// the game thread.
type Projectile struct {
	Actor    *Actor
	Velocity geom.Vector3
	Damage   int
	Hostile  bool
	lifetime float64
}

// NewProjectile spawns a projectile into the world heading along velocity.
// Game thread only.
func NewProjectile(w *World, location geom.Vector3, velocity geom.Vector3, damage int, hostile bool) *Projectile {
	actor := w.SpawnActor(ActorKindProjectile, location, geom.Rotator{}, geom.UnitScale)
	actor.Rotation.Yaw = location.YawTowards(location.Add(velocity))

	return &Projectile{
		Actor:    actor,
		Velocity: velocity,
		Damage:   damage,
		Hostile:  hostile,
		lifetime: projectileLifetime,
	}
}

// Update advances the projectile. Returns false once it has expired or left
// the world bounds.
func (p *Projectile) Update(deltaTime, worldWidth, worldHeight float64) bool {
	p.Actor.Location = p.Actor.Location.Add(p.Velocity.Scale(deltaTime))
	p.lifetime -= deltaTime

	if p.lifetime <= 0 {
		return false
	}
	loc := p.Actor.Location
	return loc.X >= 0 && loc.X <= worldWidth && loc.Y >= 0 && loc.Y <= worldHeight
}
