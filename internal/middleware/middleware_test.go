package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/ws/game/:gameId", EnsurePlayerID(), WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestWebSocketUpgradeRejectsPlainHTTP(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/ws/game/g1", nil)
	req.Header.Set("X-Player-ID", "alice")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("plain HTTP request: got status %d, want %d", resp.StatusCode, fiber.StatusUpgradeRequired)
	}
}

func TestWebSocketUpgradePassesValidHandshake(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/ws/game/g1", nil)
	req.Header.Set("X-Player-ID", "alice")
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("valid handshake: got status %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
}

func TestEnsurePlayerIDRequired(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/ws/game/g1", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("missing player id: got status %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}
}

func TestEnsurePlayerIDFromQuery(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/ws/game/g1?playerId=alice", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("query player id: got status %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
}
