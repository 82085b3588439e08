package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"mcp-shooter/internal/api"
	"mcp-shooter/internal/assets"
	"mcp-shooter/internal/config"
	"mcp-shooter/internal/game"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	} else {
		log.Println("✅ Loaded environment from .env")
	}

	log.Println("🚀 ================================")
	log.Println("🚀  MCP SHOOTER")
	log.Println("🚀  Blender → Engine asset bridge")
	log.Println("🚀 ================================")

	appConfig := config.Load()
	gameCfg := appConfig.Game
	serverCfg := appConfig.Server

	port := strconv.Itoa(serverCfg.Port)

	// Asset manager singleton: builds the MCP client and loads the
	// endpoint settings document
	manager := assets.Get()
	log.Printf("🔌 MCP server: %s", manager.Client().ServerURL())

	// Debug server (pprof + metrics), localhost only
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	world := game.NewWorld(gameCfg.TickRate, gameCfg.WorldWidth, gameCfg.WorldHeight)
	world.SetTickObserver(api.RecordTick)
	manager.BindWorld(world)
	manager.SetCommandObserver(func(command string, ok bool) {
		api.RecordMCPCommand(command, ok)
		if command == "import_asset" {
			api.RecordAssetImport(ok)
		}
	})

	gameMode := game.NewShooterGameMode(world, manager, appConfig.Shooter)
	controller := game.NewPlayerController(gameMode)

	component := game.NewMCPComponent(manager, world)
	component.BeginPlay()

	server := api.NewServer(gameMode, controller, world, manager)

	world.Start()
	log.Println("✅ Game world started")

	go func() {
		addr := ":" + port
		log.Printf("🌐 API server on http://localhost%s", addr)

		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	if os.Getenv("AUTO_START_GAME") == "true" {
		gameMode.StartGame()
	} else {
		log.Println("💡 POST /api/game/start to begin a run")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	server.Stop()
	world.Stop()
	log.Println("👋 Goodbye!")
}
