package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	_ "modernc.org/sqlite"
)

// DefaultTopLimit - сколько строк отдаем, если лимит не задан.
const DefaultTopLimit = 10

// Highscores - таблица рекордов в SQLite.
type Highscores struct {
	db *sql.DB
}

// OpenHighscores открывает (или создает) базу рекордов по пути path.
func OpenHighscores(path string) (*Highscores, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Один писатель: сессии пишут редко, конкуренция за файл не нужна
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS highscores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		score INTEGER NOT NULL,
		level INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS highscores_score ON highscores(score DESC);`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Highscores{db: db}, nil
}

// Record добавляет результат партии.
func (h *Highscores) Record(ctx context.Context, entry domain.ScoreEntry) error {
	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO highscores (name, score, level, seed, created_at) VALUES (?, ?, ?, ?, ?)`,
		entry.Name, entry.Score, entry.Level, entry.Seed, created.Unix(),
	)
	if err != nil {
		return fmt.Errorf("record highscore: %w", err)
	}
	return nil
}

// Top возвращает лучшие результаты. При равном счете выше тот, кто раньше.
func (h *Highscores) Top(ctx context.Context, limit int) ([]domain.ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT name, score, level, seed, created_at FROM highscores
		 ORDER BY score DESC, created_at ASC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query highscores: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ScoreEntry, 0, limit)
	for rows.Next() {
		var (
			e       domain.ScoreEntry
			created int64
		)
		if err := rows.Scan(&e.Name, &e.Score, &e.Level, &e.Seed, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(created, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (h *Highscores) Close() error {
	return h.db.Close()
}
