package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/minihouse/minihouse-backend/internal/controller"
	"github.com/minihouse/minihouse-backend/internal/middleware"
	"github.com/minihouse/minihouse-backend/internal/service"
	"github.com/minihouse/minihouse-backend/internal/store"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     envOr("CORS_ORIGIN", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	archive, err := store.NewArchive(envOr("DB_PATH", "data/minihouse.db"))
	if err != nil {
		log.Fatalf("failed to open archive: %v", err)
	}
	defer archive.Close()

	// Initialize services
	gameManager := service.NewGameManager(archive)
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(func(c *websocket.Conn) {
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Post("/:gameId/action", gameController.PostAction)
	gameRoutes.Get("/finished", gameController.RecentGames)
	gameRoutes.Get("/:gameId/legal", gameController.GetLegalActions)
	gameRoutes.Get("/:gameId", gameController.GetGameState)

	log.Fatal(app.Listen(":" + envOr("PORT", "3000")))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
