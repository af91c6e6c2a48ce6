package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/minihouse/minihouse-backend/internal/ai"
	"github.com/minihouse/minihouse-backend/internal/model"
	"github.com/minihouse/minihouse-backend/internal/rules"
	"github.com/minihouse/minihouse-backend/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	VsAI       bool          `json:"vsAi"`
	Difficulty ai.Difficulty `json:"difficulty"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}
	if req.Difficulty == "" {
		req.Difficulty = ai.DifficultyMedium
	}

	gameID, err := gc.gameService.CreateGame(req.VsAI, req.Difficulty)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	view, err := gc.gameService.GetGameView(gameID)
	if err != nil {
		if err.Error() == "game not found" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game state",
		})
	}

	return c.JSON(view)
}

// GetLegalActions lets the presentation layer highlight destinations for a
// selected square or a banked piece type.
func (gc *GameController) GetLegalActions(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	view, err := gc.gameService.GetGameView(gameID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	state := view.State

	if dropType := c.Query("drop"); dropType != "" {
		piece, ok := rules.BankPiece(&state, state.ToMove, model.PieceType(dropType))
		if !ok {
			return c.JSON(fiber.Map{"targets": []model.Position{}})
		}
		return c.JSON(fiber.Map{"targets": rules.LegalDrops(&state, piece)})
	}

	from := model.Position{X: c.QueryInt("x", -1), Y: c.QueryInt("y", -1)}
	if !from.InBounds() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "x and y query parameters are required",
		})
	}
	return c.JSON(fiber.Map{"targets": rules.LegalMoves(&state, from)})
}

func (gc *GameController) RecentGames(c *fiber.Ctx) error {
	games, err := gc.gameService.RecentGames(c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch finished games",
		})
	}
	return c.JSON(fiber.Map{"games": games})
}

// PostAction applies a move or drop over plain HTTP, mirroring the
// websocket action path for clients without a socket.
func (gc *GameController) PostAction(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var action model.Action
	if err := c.BodyParser(&action); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid action body",
		})
	}
	if err := gc.gameService.HandleAction(gameID, playerID, action); err != nil {
		return c.Status(rejectionStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Action applied"})
}

func rejectionStatus(err error) int {
	if errors.Is(err, rules.ErrInvalidMove) || errors.Is(err, rules.ErrInvalidDrop) {
		return fiber.StatusUnprocessableEntity
	}
	if errors.Is(err, rules.ErrGameOver) {
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}
