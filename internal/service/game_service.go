package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/minihouse/minihouse-backend/internal/ai"
	"github.com/minihouse/minihouse-backend/internal/model"
	"github.com/minihouse/minihouse-backend/internal/store"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(vsAI bool, difficulty ai.Difficulty) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID, vsAI, difficulty); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameView(gameID string) (GameView, error) {
	return gs.gameManager.GetGameView(gameID)
}

func (gs *GameService) HandleAction(gameID string, playerID string, action model.Action) error {
	return gs.gameManager.HandleAction(gameID, playerID, action)
}

func (gs *GameService) Resign(gameID string, playerID string) error {
	return gs.gameManager.Resign(gameID, playerID)
}

func (gs *GameService) RecentGames(limit int) ([]store.FinishedGame, error) {
	return gs.gameManager.RecentGames(limit)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}
