package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres opens the pool and bootstraps the schema.
func ConnectPostgres(uri string) error {
	db, err := sql.Open("postgres", uri)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	PostgresDB = db
	log.Println("✅ Connected to PostgreSQL")

	if err := createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

func createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS usuarios (
			id UUID PRIMARY KEY,
			nome VARCHAR(100) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			senha_hash TEXT NOT NULL,
			objetivo TEXT,
			nivel INTEGER NOT NULL DEFAULT 1,
			xp INTEGER NOT NULL DEFAULT 0,
			criado_em TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ciclos_pomodoro (
			id BIGSERIAL PRIMARY KEY,
			usuario_id UUID NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
			tipo VARCHAR(20) NOT NULL,
			duracao INTEGER NOT NULL,
			completado BOOLEAN NOT NULL DEFAULT TRUE,
			data_conclusao TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ciclos_usuario_data
			ON ciclos_pomodoro(usuario_id, data_conclusao DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_ciclos_usuario_tipo
			ON ciclos_pomodoro(usuario_id, tipo)`,
		`CREATE TABLE IF NOT EXISTS configuracoes (
			usuario_id UUID PRIMARY KEY REFERENCES usuarios(id) ON DELETE CASCADE,
			foco_min INTEGER NOT NULL DEFAULT 25,
			pausa_curta_min INTEGER NOT NULL DEFAULT 5,
			pausa_longa_min INTEGER NOT NULL DEFAULT 15,
			ciclos_ate_pausa_longa INTEGER NOT NULL DEFAULT 4,
			atualizado_em TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS user_unlocked_sounds (
			usuario_id UUID NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
			sound_id VARCHAR(100) NOT NULL,
			unlocked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (usuario_id, sound_id)
		)`,
		`CREATE TABLE IF NOT EXISTS user_playlists (
			usuario_id UUID NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
			sound_id VARCHAR(100) NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (usuario_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS user_achievements (
			usuario_id UUID NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
			achievement_key VARCHAR(100) NOT NULL,
			seen BOOLEAN NOT NULL DEFAULT FALSE,
			achieved_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (usuario_id, achievement_key)
		)`,
		`CREATE TABLE IF NOT EXISTS password_reset_tokens (
			token VARCHAR(128) PRIMARY KEY,
			usuario_id UUID NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ NOT NULL,
			used BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reset_tokens_usuario
			ON password_reset_tokens(usuario_id)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	log.Println("✅ Database tables created/verified")
	return nil
}

// ClosePostgres closes the connection pool.
func ClosePostgres() {
	if PostgresDB != nil {
		PostgresDB.Close()
		log.Println("PostgreSQL connection closed")
	}
}
