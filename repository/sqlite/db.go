package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "yt-summary/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS summaries (
    video_id   TEXT NOT NULL,
    style      TEXT NOT NULL,
    tone       TEXT NOT NULL,
    text       TEXT NOT NULL,
    model      TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    PRIMARY KEY (video_id, style, tone)
);

CREATE TABLE IF NOT EXISTS settings (
    chat_id    INTEGER PRIMARY KEY,
    style      TEXT NOT NULL,
    tone       TEXT NOT NULL,
    updated_at DATETIME NOT NULL
);
`

type statements struct {
	findSummary  *sql.Stmt
	saveSummary  *sql.Stmt
	getSettings  *sql.Stmt
	saveSettings *sql.Stmt
}

type DB struct {
	*sql.DB
	statements statements
}

func InitDB(dbPath string) (*DB, error) {
	const op = "sqlite.InitDB"

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, apperrors.Internal(op, err, "failed to create database directory")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, apperrors.Internal(op, err, "failed to open database")
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := configurePragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, apperrors.Internal(op, err, "failed to execute schema")
	}

	wrapped := &DB{DB: db}
	if err := wrapped.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return wrapped, nil
}

func configurePragmas(db *sql.DB) error {
	const op = "sqlite.configurePragmas"

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return apperrors.Internal(op, err, fmt.Sprintf("failed to set pragma: %s", pragma))
		}
	}

	return nil
}

func (db *DB) prepareStatements() error {
	const op = "sqlite.prepareStatements"

	var err error
	prepare := func(query string) *sql.Stmt {
		if err != nil {
			return nil
		}
		var stmt *sql.Stmt
		stmt, err = db.Prepare(query)
		return stmt
	}

	db.statements.findSummary = prepare(
		`SELECT video_id, style, tone, text, model, created_at FROM summaries WHERE video_id = ? AND style = ? AND tone = ?`)
	db.statements.saveSummary = prepare(
		`INSERT INTO summaries (video_id, style, tone, text, model, created_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(video_id, style, tone) DO UPDATE SET text = excluded.text, model = excluded.model, created_at = excluded.created_at`)
	db.statements.getSettings = prepare(
		`SELECT chat_id, style, tone, updated_at FROM settings WHERE chat_id = ?`)
	db.statements.saveSettings = prepare(
		`INSERT INTO settings (chat_id, style, tone, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(chat_id) DO UPDATE SET style = excluded.style, tone = excluded.tone, updated_at = excluded.updated_at`)

	if err != nil {
		return apperrors.Internal(op, err, "failed to prepare statements")
	}
	return nil
}
