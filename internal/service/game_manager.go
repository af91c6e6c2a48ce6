package service

import (
	"errors"
	"log"
	"sync"

	"github.com/minihouse/minihouse-backend/internal/ai"
	"github.com/minihouse/minihouse-backend/internal/model"
	"github.com/minihouse/minihouse-backend/internal/store"
)

// GameManager owns every live game and archives them once finished.
type GameManager struct {
	games   map[string]*Game
	archive *store.Archive
	mu      sync.RWMutex
}

func NewGameManager(archive *store.Archive) *GameManager {
	return &GameManager{
		games:   make(map[string]*Game),
		archive: archive,
	}
}

func (gm *GameManager) CreateGame(gameID string, vsAI bool, difficulty ai.Difficulty) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.New("game already exists")
	}
	gm.games[gameID] = NewGame(gameID, vsAI, difficulty, gm.archiveGame)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.New("game not found")
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameView(gameID string) (GameView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return GameView{}, err
	}
	return game.GetView(), nil
}

func (gm *GameManager) HandleAction(gameID string, playerID string, action model.Action) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.HandleAction(playerID, action)
}

func (gm *GameManager) Resign(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Resign(playerID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

func (gm *GameManager) RecentGames(limit int) ([]store.FinishedGame, error) {
	if gm.archive == nil {
		return []store.FinishedGame{}, nil
	}
	return gm.archive.RecentGames(limit)
}

func (gm *GameManager) archiveGame(g *Game, result, termination string) {
	if gm.archive == nil {
		return
	}
	white, black := g.PlayerNames()
	if err := gm.archive.SaveGame(g.ID, white, black, result, termination, g.History()); err != nil {
		log.Printf("failed to archive game %s: %v", g.ID, err)
	}
}
