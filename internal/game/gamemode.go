package game

import (
	"log"
	"sync"

	"mcp-shooter/internal/assets"
	"mcp-shooter/internal/config"
	"mcp-shooter/internal/game/geom"
)

// GameModeClassPath is the content path of the shooter game-mode class as
// the MCP server knows it.
const GameModeClassPath = "/Game/Blueprints/BP_ShooterGameMode.BP_ShooterGameMode_C"

// Authoring-side model files the demo imports at startup, and where their
// engine assets land.
const (
	playerModelFile  = "assets/player_ship.blend"
	enemyModelFile   = "assets/enemy_ship.blend"
	assetDestination = "/Game/BlenderAssets"
)

// GameStats is the scoreboard exposed to the API and the websocket feed.
type GameStats struct {
	Score            int   `json:"score"`
	PlayerHealth     int   `json:"playerHealth"`
	EnemiesAlive     int   `json:"enemiesAlive"`
	ProjectilesAlive int   `json:"projectilesAlive"`
	EnemiesDestroyed int   `json:"enemiesDestroyed"`
	Started          bool  `json:"started"`
	GameOver         bool  `json:"gameOver"`
	Tick             int64 `json:"tick"`
}

// ShooterGameMode runs the top-down shooter: it spawns the player, drives
// enemy waves, moves projectiles, resolves hits, and keeps score. All state
// mutates on the game thread via the world tick; Stats and snapshots copy it
// out under the mutex.
type ShooterGameMode struct {
	world   *World
	manager *assets.Manager
	cfg     config.ShooterConfig

	mu sync.RWMutex

	player      *PlayerShip
	enemies     []*Enemy
	projectiles []*Projectile

	Score            int
	MaxEnemies       int
	enemiesDestroyed int

	spawnTimer   float64
	started      bool
	gameOver     bool
	restartTimer float64

	playerAsset *assets.Asset
	enemyAsset  *assets.Asset
}

// NewShooterGameMode wires a game mode into the world tick. Call before the
// world starts.
func NewShooterGameMode(world *World, manager *assets.Manager, cfg config.ShooterConfig) *ShooterGameMode {
	gm := &ShooterGameMode{
		world:      world,
		manager:    manager,
		cfg:        cfg,
		MaxEnemies: cfg.MaxEnemies,
	}

	world.RegisterArchetype("PlayerShip", func(w *World, location geom.Vector3, rotation geom.Rotator) *Actor {
		ship := NewPlayerShip(w, location)
		ship.Actor.Rotation = rotation
		return ship.Actor
	})
	world.RegisterArchetype("EnemyShip", func(w *World, location geom.Vector3, rotation geom.Rotator) *Actor {
		enemy := NewEnemy(w, location)
		enemy.Actor.Rotation = rotation
		return enemy.Actor
	})

	world.OnTick(gm.Tick)
	return gm
}

// ClassPath identifies the game-mode class to the MCP server.
func (gm *ShooterGameMode) ClassPath() string {
	return GameModeClassPath
}

// StartGame imports the ship models through the MCP bridge, tells the server
// to activate this game mode, and spawns the player. Safe from any
// goroutine; the world mutation is posted to the game thread. Starting an
// already-started game restarts it.
func (gm *ShooterGameMode) StartGame() {
	gm.LoadBlenderAssets()
	gm.manager.SetGameMode(gm)

	gm.world.Do(func() {
		gm.mu.Lock()
		defer gm.mu.Unlock()
		gm.resetLocked()
		gm.started = true
		log.Println("🚀 Shooter game started")
	})
}

// LoadBlenderAssets imports the player and enemy ship models. Import
// failures are logged and leave the ships without meshes; gameplay does not
// depend on them.
func (gm *ShooterGameMode) LoadBlenderAssets() {
	gm.manager.ImportBlenderModel(playerModelFile, assetDestination, func(result assets.ImportResult) {
		if !result.Success {
			return
		}
		gm.mu.Lock()
		gm.playerAsset = gm.manager.Registry().Find(result.AssetPath)
		gm.mu.Unlock()
	})

	gm.manager.ImportBlenderModel(enemyModelFile, assetDestination, func(result assets.ImportResult) {
		if !result.Success {
			return
		}
		gm.mu.Lock()
		gm.enemyAsset = gm.manager.Registry().Find(result.AssetPath)
		gm.mu.Unlock()
	})
}

// ApplyInput replaces the player's movement and fire intents. Safe from any
// goroutine.
func (gm *ShooterGameMode) ApplyInput(moveX, moveY float64, firing bool) {
	gm.world.Do(func() {
		gm.mu.Lock()
		defer gm.mu.Unlock()
		if gm.player != nil {
			gm.player.SetInput(moveX, moveY, firing)
		}
	})
}

// Tick advances one simulation step. Runs on the game thread.
func (gm *ShooterGameMode) Tick(deltaTime float64) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if !gm.started {
		return
	}

	if gm.gameOver {
		gm.restartTimer -= deltaTime
		if gm.restartTimer <= 0 {
			gm.resetLocked()
			gm.started = true
			log.Println("🔄 Game restarted")
		}
		return
	}

	width, height := gm.world.Bounds()

	if fired := gm.player.Update(deltaTime, width, height); fired {
		gm.spawnProjectileLocked()
	}

	for _, enemy := range gm.enemies {
		if fired := enemy.Update(deltaTime, gm.player.Actor.Location); fired {
			gm.spawnEnemyProjectileLocked(enemy)
		}
	}

	alive := gm.projectiles[:0]
	for _, proj := range gm.projectiles {
		if proj.Update(deltaTime, width, height) {
			alive = append(alive, proj)
		} else {
			gm.world.DestroyActor(proj.Actor.ID)
		}
	}
	gm.projectiles = alive

	gm.resolveHitsLocked()

	gm.spawnTimer -= deltaTime
	if gm.spawnTimer <= 0 && len(gm.enemies) < gm.MaxEnemies {
		gm.spawnTimer = gm.cfg.EnemySpawnInterval
		gm.spawnEnemyLocked(width)
	}

	if !gm.player.IsAlive() {
		gm.gameOver = true
		gm.restartTimer = gm.cfg.RestartDelay
		log.Printf("💀 Game over, final score %d", gm.Score)
	}
}

// spawnProjectileLocked fires a shot from the player's nose, straight up.
func (gm *ShooterGameMode) spawnProjectileLocked() {
	if len(gm.projectiles) >= gm.cfg.MaxProjectiles {
		return
	}

	muzzle := gm.player.Actor.Location.Add(geom.Vector3{Y: -PlayerHitRadius})
	proj := NewProjectile(gm.world, muzzle, geom.Vector3{Y: -ProjectileSpeed}, ProjectileDamage, false)
	gm.projectiles = append(gm.projectiles, proj)
}

// spawnEnemyProjectileLocked fires a shot from the enemy toward the player.
func (gm *ShooterGameMode) spawnEnemyProjectileLocked(enemy *Enemy) {
	if len(gm.projectiles) >= gm.cfg.MaxProjectiles {
		return
	}

	direction := gm.player.Actor.Location.Sub(enemy.Actor.Location).Normalized()
	proj := NewProjectile(gm.world, enemy.Actor.Location, direction.Scale(EnemyProjectileSpeed), EnemyProjectileDamage, true)
	gm.projectiles = append(gm.projectiles, proj)
}

func (gm *ShooterGameMode) spawnEnemyLocked(worldWidth float64) {
	enemy := NewEnemy(gm.world, randomEdgeSpawn(worldWidth))
	if gm.enemyAsset != nil {
		enemy.Actor.SetMesh(gm.enemyAsset.Name, gm.enemyAsset.Path)
	}
	gm.enemies = append(gm.enemies, enemy)
}

// resolveHitsLocked runs projectile and contact checks and prunes the dead.
// Friendly shots hit only enemies, hostile shots only the player.
func (gm *ShooterGameMode) resolveHitsLocked() {
	for _, proj := range gm.projectiles {
		if proj.Hostile {
			if proj.Actor.Location.DistanceTo(gm.player.Actor.Location) <= PlayerHitRadius {
				gm.player.TakeDamage(proj.Damage)
				proj.lifetime = 0
			}
			continue
		}

		for _, enemy := range gm.enemies {
			if !enemy.IsAlive() {
				continue
			}
			if proj.Actor.Location.DistanceTo(enemy.Actor.Location) <= EnemyHitRadius {
				enemy.TakeDamage(proj.Damage)
				proj.lifetime = 0
				if !enemy.IsAlive() {
					gm.Score += EnemyScoreValue
					gm.enemiesDestroyed++
				}
				break
			}
		}
	}

	liveEnemies := gm.enemies[:0]
	for _, enemy := range gm.enemies {
		if !enemy.IsAlive() {
			gm.world.DestroyActor(enemy.Actor.ID)
			continue
		}
		if enemy.Actor.Location.DistanceTo(gm.player.Actor.Location) <= EnemyHitRadius+PlayerHitRadius {
			gm.player.TakeDamage(EnemyContactDamage)
			gm.world.DestroyActor(enemy.Actor.ID)
			continue
		}
		liveEnemies = append(liveEnemies, enemy)
	}
	gm.enemies = liveEnemies
}

// resetLocked clears the field and spawns a fresh player ship.
func (gm *ShooterGameMode) resetLocked() {
	if gm.player != nil {
		gm.world.DestroyActor(gm.player.Actor.ID)
	}
	for _, enemy := range gm.enemies {
		gm.world.DestroyActor(enemy.Actor.ID)
	}
	for _, proj := range gm.projectiles {
		gm.world.DestroyActor(proj.Actor.ID)
	}

	gm.enemies = nil
	gm.projectiles = nil
	gm.Score = 0
	gm.enemiesDestroyed = 0
	gm.gameOver = false
	gm.spawnTimer = gm.cfg.EnemySpawnInterval

	width, height := gm.world.Bounds()
	gm.player = NewPlayerShip(gm.world, geom.Vector3{X: width / 2, Y: height - 120})
	if gm.playerAsset != nil {
		gm.player.Actor.SetMesh(gm.playerAsset.Name, gm.playerAsset.Path)
	}
}

// Stats copies out the scoreboard. Safe from any goroutine.
func (gm *ShooterGameMode) Stats() GameStats {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	stats := GameStats{
		Score:            gm.Score,
		EnemiesAlive:     len(gm.enemies),
		ProjectilesAlive: len(gm.projectiles),
		EnemiesDestroyed: gm.enemiesDestroyed,
		Started:          gm.started,
		GameOver:         gm.gameOver,
		Tick:             gm.world.TickCount(),
	}
	if gm.player != nil {
		stats.PlayerHealth = gm.player.Health
	}
	return stats
}
