package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/minihouse/minihouse-backend/internal/ai"
	"github.com/minihouse/minihouse-backend/internal/model"
	"github.com/minihouse/minihouse-backend/internal/rules"
	"github.com/minihouse/minihouse-backend/internal/ws"
)

// Conn is the subset of the websocket connection the session layer writes
// to. gofiber's connection permits a single writer at a time, so every
// write goes through a per-connection mutex.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type playerConn struct {
	conn Conn
	mu   sync.Mutex
}

func (pc *playerConn) writeJSON(v interface{}) error {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.conn.WriteJSON(v)
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]*playerConn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*playerConn),
	}
}

type SessionPlayer struct {
	ID       string `json:"name"`
	Color    string `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}

// GameView is the client-facing snapshot of a session.
type GameView struct {
	State   model.GameState `json:"state"`
	Resolve *string         `json:"resolve"`
	Players struct {
		White SessionPlayer `json:"white"`
		Black SessionPlayer `json:"black"`
	} `json:"players"`
}

// Game owns a single game's state and its observers. All rule decisions
// go through the rules package; this layer only sequences players, clocks
// and connections around it.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       model.GameState
	resolve     *string
	connections *GameConnections
	whiteClock  *model.Clock
	blackClock  *model.Clock
	players     struct {
		White SessionPlayer
		Black SessionPlayer
	}

	vsAI       bool
	aiColor    model.PlayerColor
	difficulty ai.Difficulty
	aiCtx      context.Context
	aiCancel   context.CancelFunc

	onFinished func(g *Game, result, termination string)
}

const aiPlayerName = "engine"

func NewGame(id string, vsAI bool, difficulty ai.Difficulty, onFinished func(g *Game, result, termination string)) *Game {
	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		ID:          id,
		state:       model.NewGameState(),
		connections: NewGameConnections(),
		whiteClock:  model.NewClock(600 * time.Second),
		blackClock:  model.NewClock(600 * time.Second),
		vsAI:        vsAI,
		aiColor:     model.Black,
		difficulty:  difficulty,
		aiCtx:       ctx,
		aiCancel:    cancel,
		onFinished:  onFinished,
	}
	if vsAI {
		g.players.Black = SessionPlayer{ID: aiPlayerName, Color: string(model.Black), TimeLeft: 6000}
	}
	return g
}

func (g *Game) AddPlayer(playerID string) (model.PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players.White.ID == "" {
		g.players.White = SessionPlayer{ID: playerID, Color: string(model.White), TimeLeft: 6000}
		return model.White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = SessionPlayer{ID: playerID, Color: string(model.Black), TimeLeft: 6000}
		return model.Black, nil
	}
	return "", errors.New("game is full")
}

func (g *Game) GetView() GameView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view()
}

func (g *Game) view() GameView {
	view := GameView{State: g.state.Clone(), Resolve: g.resolve}
	view.Players.White = g.players.White
	view.Players.Black = g.players.Black
	return view
}

func (g *Game) colorOf(playerID string) (model.PlayerColor, bool) {
	if g.players.White.ID == playerID {
		return model.White, true
	}
	if g.players.Black.ID == playerID {
		return model.Black, true
	}
	return "", false
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.colorOf(playerID)
	return ok
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// HandleAction validates and applies a player's intent. Rejections come
// back as rules.ErrInvalidMove / ErrInvalidDrop / ErrGameOver for the
// websocket layer to report.
func (g *Game) HandleAction(playerID string, action model.Action) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != nil {
		return rules.ErrGameOver
	}
	color, ok := g.colorOf(playerID)
	if !ok {
		return errors.New("player not in game")
	}
	if color != g.state.ToMove {
		return errors.New("not your turn")
	}
	if err := g.applyAction(action); err != nil {
		return err
	}
	if g.resolve == nil && g.vsAI && g.state.ToMove == g.aiColor {
		go g.playAIMove()
	}
	return nil
}

// applyAction runs under g.mu.
func (g *Game) applyAction(action model.Action) error {
	next, err := rules.ValidateAndApply(g.state, action)
	if err != nil {
		return err
	}

	if g.state.ToMove == model.White {
		g.whiteClock.Stop()
		g.blackClock.Start()
	} else {
		g.blackClock.Stop()
		g.whiteClock.Start()
	}
	g.state = next
	g.players.White.TimeLeft = int(g.whiteClock.TimeLeft().Milliseconds() / 100)
	g.players.Black.TimeLeft = int(g.blackClock.TimeLeft().Milliseconds() / 100)

	if g.state.IsCheckmate {
		winner := g.state.ToMove.Opponent()
		g.finish(resultFor(winner), "checkmate")
	} else if g.state.IsStalemate {
		g.finish("1/2-1/2", "stalemate")
	}

	go g.broadcastState()
	return nil
}

// playAIMove asks the engine for a reply on its own goroutine so the
// websocket handler returns immediately. The session context cancels an
// in-flight search when the game ends, so a stale result is never applied.
func (g *Game) playAIMove() {
	g.mu.Lock()
	state := g.state.Clone()
	difficulty := g.difficulty
	ctx := g.aiCtx
	g.mu.Unlock()

	action, err := ai.RequestMove(ctx, state, difficulty, 0)
	if err != nil {
		if !errors.Is(err, rules.ErrGameOver) && ctx.Err() == nil {
			log.Printf("ai request failed for game %s: %v", g.ID, err)
		}
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.resolve != nil || g.state.ToMove != g.aiColor || ctx.Err() != nil {
		return
	}
	if err := g.applyAction(action); err != nil {
		log.Printf("ai move rejected for game %s: %v", g.ID, err)
	}
}

func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolve != nil {
		return rules.ErrGameOver
	}
	color, ok := g.colorOf(playerID)
	if !ok {
		return errors.New("player not in game")
	}
	g.finish(resultFor(color.Opponent()), "resignation")
	go g.broadcastState()
	return nil
}

// finish runs under g.mu.
func (g *Game) finish(result, termination string) {
	resolve := termination
	g.resolve = &resolve
	g.whiteClock.Stop()
	g.blackClock.Stop()
	g.aiCancel()
	if g.onFinished != nil {
		go g.onFinished(g, result, termination)
	}
}

func resultFor(winner model.PlayerColor) string {
	if winner == model.White {
		return "1-0"
	}
	return "0-1"
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	_, inGame := g.colorOf(playerID)
	authorized := inGame || g.canSpectate()
	g.mu.Unlock()

	if !authorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and reject the new one.
		g.connections.mu.Unlock()
		err := conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		if err != nil {
			log.Printf("failed to close duplicate connection for player %s: %v", playerID, err)
		}
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = &playerConn{conn: conn}
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	view := g.GetView()
	payload, err := json.Marshal(view)
	if err != nil {
		log.Printf("failed to marshal game view for %s: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*playerConn, len(g.connections.connections))
	for playerID, pc := range g.connections.connections {
		active[playerID] = pc
	}
	g.connections.mu.RUnlock()

	msg := ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	}
	for playerID, pc := range active {
		if err := pc.writeJSON(msg); err != nil {
			log.Printf("failed to send state to player %s: %v", playerID, err)
			g.connections.mu.Lock()
			// The player may have reconnected since the snapshot; only
			// drop the connection that actually failed.
			if g.connections.connections[playerID] == pc {
				delete(g.connections.connections, playerID)
			}
			g.connections.mu.Unlock()
		}
	}
}

// History returns a copy of the move history for archiving.
func (g *Game) History() []model.Ply {
	g.mu.Lock()
	defer g.mu.Unlock()
	history := make([]model.Ply, len(g.state.MoveHistory))
	copy(history, g.state.MoveHistory)
	return history
}

// PlayerNames returns the white and black player identifiers.
func (g *Game) PlayerNames() (string, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players.White.ID, g.players.Black.ID
}
