// Package store archives finished games in SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/minihouse/minihouse-backend/internal/model"
)

type Archive struct {
	db *sql.DB
}

// FinishedGame is one archived game row.
type FinishedGame struct {
	ID          string    `json:"id"`
	WhitePlayer string    `json:"whitePlayer"`
	BlackPlayer string    `json:"blackPlayer"`
	Result      string    `json:"result"`
	Termination string    `json:"termination"`
	Moves       []string  `json:"moves"`
	EndedAt     time.Time `json:"endedAt"`
}

func NewArchive(dbPath string) (*Archive, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS finished_games (
		id TEXT PRIMARY KEY,
		white_player TEXT,
		black_player TEXT,
		result TEXT,
		termination TEXT,
		moves TEXT,
		ended_at DATETIME
	);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// SaveGame records a finished game: the result, why it ended, and the
// notation of every ply.
func (a *Archive) SaveGame(gameID, whitePlayer, blackPlayer, result, termination string, history []model.Ply) error {
	moves := make([]string, 0, len(history))
	for _, ply := range history {
		moves = append(moves, ply.Notation)
	}
	movesJSON, err := json.Marshal(moves)
	if err != nil {
		return fmt.Errorf("failed to marshal moves: %w", err)
	}

	_, err = a.db.Exec(
		`INSERT OR REPLACE INTO finished_games (id, white_player, black_player, result, termination, moves, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gameID, whitePlayer, blackPlayer, result, termination, string(movesJSON), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

// RecentGames lists the most recently finished games, newest first.
func (a *Archive) RecentGames(limit int) ([]FinishedGame, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := a.db.Query(
		`SELECT id, white_player, black_player, result, termination, moves, ended_at
		 FROM finished_games ORDER BY ended_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	games := []FinishedGame{}
	for rows.Next() {
		var g FinishedGame
		var movesJSON string
		if err := rows.Scan(&g.ID, &g.WhitePlayer, &g.BlackPlayer, &g.Result, &g.Termination, &movesJSON, &g.EndedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		if err := json.Unmarshal([]byte(movesJSON), &g.Moves); err != nil {
			return nil, fmt.Errorf("failed to decode moves: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
