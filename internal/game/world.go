package game

import (
	"bytes"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"mcp-shooter/internal/assets"
	"mcp-shooter/internal/game/geom"
)

// maxTasksPerTick bounds how much posted work a single tick drains, so a
// flood of scheduled placements cannot stall the simulation.
const maxTasksPerTick = 256

// TickFunc is gameplay logic driven by the world loop. It runs on the game
// thread with the tick delta in seconds.
type TickFunc func(deltaTime float64)

// ArchetypeFunc constructs an actor for a blueprint template. It runs on the
// game thread.
type ArchetypeFunc func(w *World, location geom.Vector3, rotation geom.Rotator) *Actor

// World owns all live actors and the game loop. The loop goroutine is the
// engine's game thread: all world mutation happens there, either inside a
// tick or through a task posted with Post.
type World struct {
	mu     sync.RWMutex
	actors map[uint64]*Actor

	width  float64
	height float64

	nextActorID atomic.Uint64
	tickCount   atomic.Int64

	tasks    chan func()
	tickRate int
	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}

	// Goroutine id of the loop, 0 until Start.
	loopGoroutine atomic.Uint64

	tickFuncs  []TickFunc
	archetypes map[string]ArchetypeFunc

	// tickObserver reports tick durations for metrics, may be nil.
	tickObserver func(time.Duration)
}

// NewWorld creates a stopped world with the given bounds.
func NewWorld(tickRate int, width, height float64) *World {
	return &World{
		actors:     make(map[uint64]*Actor),
		width:      width,
		height:     height,
		tasks:      make(chan func(), 1024),
		tickRate:   tickRate,
		stopChan:   make(chan struct{}),
		archetypes: make(map[string]ArchetypeFunc),
	}
}

// Bounds returns the world extents.
func (w *World) Bounds() (width, height float64) {
	return w.width, w.height
}

// TickRate returns the configured ticks per second.
func (w *World) TickRate() int {
	return w.tickRate
}

// TickCount returns the number of completed ticks.
func (w *World) TickCount() int64 {
	return w.tickCount.Load()
}

// OnTick registers gameplay logic to run every tick. Register before Start.
func (w *World) OnTick(fn TickFunc) {
	w.tickFuncs = append(w.tickFuncs, fn)
}

// SetTickObserver registers a tick-duration observer. Register before Start.
func (w *World) SetTickObserver(fn func(time.Duration)) {
	w.tickObserver = fn
}

// RegisterArchetype binds a blueprint template name to an actor constructor.
func (w *World) RegisterArchetype(name string, fn ArchetypeFunc) {
	w.archetypes[name] = fn
}

// Start begins the game loop.
func (w *World) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.ticker = time.NewTicker(time.Second / time.Duration(w.tickRate))

	go func() {
		w.loopGoroutine.Store(goroutineID())
		for {
			select {
			case <-w.ticker.C:
				w.tick()
			case <-w.stopChan:
				return
			}
		}
	}()

	log.Printf("🎮 World started at %d TPS (%gx%g)", w.tickRate, w.width, w.height)
}

// Stop stops the game loop.
func (w *World) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	w.running = false
	if w.ticker != nil {
		w.ticker.Stop()
	}
	close(w.stopChan)
	log.Println("🛑 World stopped")
}

// OnGameThread reports whether the caller runs on the loop goroutine.
func (w *World) OnGameThread() bool {
	gid := w.loopGoroutine.Load()
	return gid != 0 && gid == goroutineID()
}

// Post schedules a task to run on the game thread at the next tick. A full
// queue drops the task with an error log rather than blocking the caller.
func (w *World) Post(task func()) {
	select {
	case w.tasks <- task:
	default:
		log.Println("❌ Game thread task queue full, dropping task")
	}
}

// Do runs the task immediately when already on the game thread, otherwise
// posts it.
func (w *World) Do(task func()) {
	if w.OnGameThread() {
		task()
		return
	}
	w.Post(task)
}

// tick drains posted tasks and advances gameplay by one step.
func (w *World) tick() {
	started := time.Now()
	deltaTime := 1.0 / float64(w.tickRate)

drain:
	for i := 0; i < maxTasksPerTick; i++ {
		select {
		case task := <-w.tasks:
			task()
		default:
			break drain
		}
	}

	for _, fn := range w.tickFuncs {
		fn(deltaTime)
	}

	w.tickCount.Add(1)

	if w.tickObserver != nil {
		w.tickObserver(time.Since(started))
	}
}

// SpawnActor creates a bare actor at the given transform. Game thread only.
func (w *World) SpawnActor(kind string, location geom.Vector3, rotation geom.Rotator, scale geom.Vector3) *Actor {
	actor := &Actor{
		ID:       w.nextActorID.Add(1),
		Kind:     kind,
		Location: location,
		Rotation: rotation,
		Scale:    scale,
	}

	w.mu.Lock()
	w.actors[actor.ID] = actor
	w.mu.Unlock()

	return actor
}

// SpawnFromAsset places an asset instance into the world and returns the
// spawned actor. Static meshes become mesh actors with the mesh bound;
// blueprint templates spawn their registered archetype. Game thread only.
func (w *World) SpawnFromAsset(asset *assets.Asset, location geom.Vector3, rotation geom.Rotator, scale geom.Vector3, label string) (*Actor, error) {
	var actor *Actor

	switch asset.Kind {
	case assets.KindStaticMesh:
		actor = w.SpawnActor(ActorKindMesh, location, rotation, scale)
		actor.SetMesh(asset.Name, asset.Path)

	case assets.KindBlueprint:
		fn, ok := w.archetypes[asset.Archetype]
		if !ok {
			return nil, fmt.Errorf("blueprint %s has no registered archetype %q", asset.Path, asset.Archetype)
		}
		actor = fn(w, location, rotation)
		if actor == nil {
			return nil, fmt.Errorf("archetype %q failed to spawn for %s", asset.Archetype, asset.Path)
		}
		actor.Scale = scale
		actor.AssetPath = asset.Path

	default:
		return nil, fmt.Errorf("unsupported asset kind %s for %s", asset.Kind, asset.Path)
	}

	if label != "" {
		actor.SetLabel(label)
	}
	return actor, nil
}

// SpawnAsset adapts SpawnFromAsset to the asset manager's world contract.
func (w *World) SpawnAsset(asset *assets.Asset, location geom.Vector3, rotation geom.Rotator, scale geom.Vector3, label string) error {
	_, err := w.SpawnFromAsset(asset, location, rotation, scale, label)
	return err
}

var _ assets.World = (*World)(nil)

// DestroyActor removes an actor from the world. Game thread only.
func (w *World) DestroyActor(id uint64) {
	w.mu.Lock()
	delete(w.actors, id)
	w.mu.Unlock()
}

// FindActor returns the actor with the given id, or nil.
func (w *World) FindActor(id uint64) *Actor {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.actors[id]
}

// ActorCount returns the number of live actors.
func (w *World) ActorCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.actors)
}

// SnapshotActors copies all live actors, sorted by id for deterministic
// output. Safe from any goroutine.
func (w *World) SnapshotActors() []ActorSnapshot {
	w.mu.RLock()
	snaps := make([]ActorSnapshot, 0, len(w.actors))
	for _, actor := range w.actors {
		snaps = append(snaps, actor.toSnapshot())
	}
	w.mu.RUnlock()

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ID < snaps[j].ID })
	return snaps
}

// goroutineID parses the current goroutine id from the runtime stack header
// ("goroutine 123 [running]:"). One small stack capture per affinity check.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
