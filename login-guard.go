package main

import (
	"database/sql"
	"regexp"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// LoginGuard tracks login attempts per identifier in a rolling window and
// locks the identifier out once the window is full. Attempts are persisted
// so the lockout survives process restarts.
type LoginGuard struct {
	db  *sql.DB
	now func() time.Time
}

func NewLoginGuard(databasePath string) (*LoginGuard, error) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS login_attempts (
		identifier   TEXT    NOT NULL,
		attempted_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_login_attempts_identifier
		ON login_attempts (identifier, attempted_at)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &LoginGuard{db: db, now: time.Now}, nil
}

// Check reports whether identifier may attempt a login. When the attempt
// count within the lockout window has reached the maximum, it returns
// false along with the time until the oldest attempt leaves the window.
func (g *LoginGuard) Check(identifier string) (bool, time.Duration, error) {
	now := g.now()
	cutoff := now.Add(-lockoutDuration).UnixMilli()

	// Attempts older than the window no longer count; drop them.
	if _, err := g.db.Exec(
		`DELETE FROM login_attempts WHERE identifier = ? AND attempted_at < ?`,
		identifier, cutoff,
	); err != nil {
		return false, 0, err
	}

	rows, err := g.db.Query(
		`SELECT attempted_at FROM login_attempts
		 WHERE identifier = ? AND attempted_at >= ?
		 ORDER BY attempted_at ASC`,
		identifier, cutoff,
	)
	if err != nil {
		return false, 0, err
	}
	defer rows.Close()

	var attempts []int64
	for rows.Next() {
		var at int64
		if err := rows.Scan(&at); err != nil {
			return false, 0, err
		}
		attempts = append(attempts, at)
	}
	if err := rows.Err(); err != nil {
		return false, 0, err
	}

	if len(attempts) >= maxLoginAttempts {
		oldest := time.UnixMilli(attempts[0])
		remaining := lockoutDuration - now.Sub(oldest)
		if remaining < 0 {
			remaining = 0
		}
		return false, remaining, nil
	}
	return true, 0, nil
}

func (g *LoginGuard) Record(identifier string) error {
	_, err := g.db.Exec(
		`INSERT INTO login_attempts (identifier, attempted_at) VALUES (?, ?)`,
		identifier, g.now().UnixMilli(),
	)
	return err
}

// Reset clears the attempt history for identifier, called after a
// successful login.
func (g *LoginGuard) Reset(identifier string) error {
	_, err := g.db.Exec(`DELETE FROM login_attempts WHERE identifier = ?`, identifier)
	return err
}

func (g *LoginGuard) Close() error {
	return g.db.Close()
}
