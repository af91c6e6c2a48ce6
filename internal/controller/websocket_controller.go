package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"

	"github.com/minihouse/minihouse-backend/internal/model"
	"github.com/minihouse/minihouse-backend/internal/service"
	"github.com/minihouse/minihouse-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("Failed to register connection: %v", err)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}

		if messageType == websocket.TextMessage {
			var msg ws.Message
			if err := json.Unmarshal(message, &msg); err != nil {
				log.Printf("parse error: %v", err)
				continue
			}

			if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
				log.Printf("handle error: %v", err)
				wsc.sendError(c, err.Error())
			}
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID)
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeAction:
		var action model.Action
		if err := json.Unmarshal(msg.Payload, &action); err != nil {
			return err
		}
		return wsc.gameService.HandleAction(gameID, playerID, action)

	case ws.MessageTypeResign:
		return wsc.gameService.Resign(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	payload, _ := json.Marshal(fiberErrorPayload{Message: errorMsg})
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	})
}

type fiberErrorPayload struct {
	Message string `json:"message"`
}
