package game

import (
	"testing"
	"time"

	"mcp-shooter/internal/assets"
	"mcp-shooter/internal/game/geom"
)

// onThread marks the calling goroutine as the world's game thread, so tests
// can drive game-thread-only paths synchronously.
func onThread(w *World) *World {
	w.loopGoroutine.Store(goroutineID())
	return w
}

func TestOnGameThread(t *testing.T) {
	w := NewWorld(100, 2000, 1200)

	if w.OnGameThread() {
		t.Error("OnGameThread() = true before the loop started")
	}

	w.Start()
	defer w.Stop()

	if w.OnGameThread() {
		t.Error("OnGameThread() = true on the test goroutine")
	}

	result := make(chan bool, 1)
	w.Post(func() {
		result <- w.OnGameThread()
	})

	select {
	case onLoop := <-result:
		if !onLoop {
			t.Error("OnGameThread() = false inside a posted task")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("posted task never ran")
	}
}

func TestPostRunsOnTick(t *testing.T) {
	w := NewWorld(100, 2000, 1200)
	w.Start()
	defer w.Stop()

	done := make(chan struct{})
	w.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("posted task was not drained by the tick loop")
	}

	if w.TickCount() == 0 {
		t.Error("TickCount() = 0 after a task ran")
	}
}

func TestDoRunsInlineOnGameThread(t *testing.T) {
	w := onThread(NewWorld(30, 2000, 1200))

	ran := false
	w.Do(func() { ran = true })
	if !ran {
		t.Error("Do did not run inline on the game thread")
	}
}

func TestSpawnFromAssetMesh(t *testing.T) {
	w := onThread(NewWorld(30, 2000, 1200))

	asset := &assets.Asset{
		Name: "PlayerShip",
		Path: "/Game/BlenderAssets/PlayerShip",
		Kind: assets.KindStaticMesh,
	}

	actor, err := w.SpawnFromAsset(asset, geom.Vector3{X: 10, Y: 20}, geom.Rotator{Yaw: 90}, geom.UnitScale, "Hero")
	if err != nil {
		t.Fatalf("SpawnFromAsset: %v", err)
	}

	if actor.Kind != ActorKindMesh {
		t.Errorf("Kind = %q, want %q", actor.Kind, ActorKindMesh)
	}
	if actor.MeshName != "PlayerShip" || actor.AssetPath != asset.Path {
		t.Errorf("mesh binding = (%q, %q)", actor.MeshName, actor.AssetPath)
	}
	if actor.Label != "Hero" {
		t.Errorf("Label = %q, want Hero", actor.Label)
	}
	if w.FindActor(actor.ID) != actor {
		t.Error("spawned actor is not in the world")
	}
}

func TestSpawnFromAssetBlueprint(t *testing.T) {
	w := onThread(NewWorld(30, 2000, 1200))
	w.RegisterArchetype("EnemyShip", func(w *World, location geom.Vector3, rotation geom.Rotator) *Actor {
		enemy := NewEnemy(w, location)
		return enemy.Actor
	})

	asset := &assets.Asset{
		Name:      "BP_EnemyShip",
		Path:      "/Game/Blueprints/BP_EnemyShip",
		Kind:      assets.KindBlueprint,
		Archetype: "EnemyShip",
	}

	actor, err := w.SpawnFromAsset(asset, geom.Vector3{X: 500}, geom.Rotator{}, geom.UnitScale, "")
	if err != nil {
		t.Fatalf("SpawnFromAsset: %v", err)
	}
	if actor.Kind != ActorKindEnemyShip {
		t.Errorf("Kind = %q, want %q", actor.Kind, ActorKindEnemyShip)
	}
	if actor.AssetPath != asset.Path {
		t.Errorf("AssetPath = %q", actor.AssetPath)
	}
}

func TestSpawnFromAssetUnknownArchetype(t *testing.T) {
	w := onThread(NewWorld(30, 2000, 1200))

	asset := &assets.Asset{
		Name:      "BP_Turret",
		Path:      "/Game/Blueprints/BP_Turret",
		Kind:      assets.KindBlueprint,
		Archetype: "Turret",
	}

	if _, err := w.SpawnFromAsset(asset, geom.Vector3{}, geom.Rotator{}, geom.UnitScale, ""); err == nil {
		t.Error("spawn with an unregistered archetype should fail")
	}
	if w.ActorCount() != 0 {
		t.Errorf("ActorCount() = %d after failed spawn, want 0", w.ActorCount())
	}
}

func TestDestroyActor(t *testing.T) {
	w := onThread(NewWorld(30, 2000, 1200))

	actor := w.SpawnActor(ActorKindMesh, geom.Vector3{}, geom.Rotator{}, geom.UnitScale)
	if w.ActorCount() != 1 {
		t.Fatalf("ActorCount() = %d, want 1", w.ActorCount())
	}

	w.DestroyActor(actor.ID)
	if w.ActorCount() != 0 {
		t.Errorf("ActorCount() = %d after destroy, want 0", w.ActorCount())
	}
	if w.FindActor(actor.ID) != nil {
		t.Error("destroyed actor still findable")
	}
}

func TestSnapshotActorsSorted(t *testing.T) {
	w := onThread(NewWorld(30, 2000, 1200))

	for i := 0; i < 5; i++ {
		w.SpawnActor(ActorKindMesh, geom.Vector3{X: float64(i)}, geom.Rotator{}, geom.UnitScale)
	}

	snaps := w.SnapshotActors()
	if len(snaps) != 5 {
		t.Fatalf("snapshot has %d actors, want 5", len(snaps))
	}
	for i := 1; i < len(snaps); i++ {
		if snaps[i-1].ID >= snaps[i].ID {
			t.Errorf("snapshot not sorted by id: %d before %d", snaps[i-1].ID, snaps[i].ID)
		}
	}
}
