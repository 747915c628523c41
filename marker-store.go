package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"
)

type MarkerType string

const (
	MarkerPosition     MarkerType = "position"
	MarkerSignalement  MarkerType = "signalement"
	MarkerVeille       MarkerType = "veille"
	MarkerExploratoire MarkerType = "exploratoire"
	MarkerNote         MarkerType = "note"
	MarkerRencontre    MarkerType = "rencontre"
)

func ValidMarkerType(markerType MarkerType) bool {
	switch markerType {
	case MarkerPosition, MarkerSignalement, MarkerVeille, MarkerExploratoire, MarkerNote, MarkerRencontre:
		return true
	}
	return false
}

type NoteData struct {
	Address         string `json:"address"`
	LocationComment string `json:"locationComment"`
	NoteType        string `json:"noteType"`
	Urgency         string `json:"urgency"`
	Object          string `json:"object"`
}

type SignalementInfo struct {
	Checked bool   `json:"checked"`
	Comment string `json:"comment"`
}

type EncounterData struct {
	Address           string                     `json:"address"`
	PostalCode        string                     `json:"postalCode"`
	City              string                     `json:"city"`
	LocationComment   string                     `json:"locationComment"`
	Composition       string                     `json:"composition"`
	LastName          string                     `json:"lastName"`
	FirstName         string                     `json:"firstName"`
	Dob               string                     `json:"dob"`
	WanderingDuration string                     `json:"wanderingDuration"`
	Phone             string                     `json:"phone"`
	GeneralComment    string                     `json:"generalComment"`
	Signalements      map[string]SignalementInfo `json:"signalements,omitempty"`
}

type MarkerData struct {
	Type      MarkerType     `json:"type"`
	Address   string         `json:"address"`
	Note      *NoteData      `json:"note,omitempty"`
	Encounter *EncounterData `json:"encounter,omitempty"`
}

type Marker struct {
	ID        string
	CreatedAt time.Time
	MarkerData
}

// MarkerStore persists the field annotations (signalements, notes,
// rencontres, exploration zones) a team drops during a maraude. Records
// are stored as plain JSON; the database file's permissions are the
// confidentiality boundary.
type MarkerStore struct {
	db *sql.DB
}

func NewMarkerStore(databasePath string) (*MarkerStore, error) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS markers (
		id         TEXT    PRIMARY KEY,
		type       TEXT    NOT NULL,
		address    TEXT    NOT NULL,
		payload    TEXT    NOT NULL,
		created_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &MarkerStore{db: db}, nil
}

func (s *MarkerStore) Add(data MarkerData) (Marker, error) {
	if !ValidMarkerType(data.Type) {
		return Marker{}, fmt.Errorf("unknown marker type '%s'", data.Type)
	}

	marker := Marker{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		MarkerData: data,
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return Marker{}, err
	}
	_, err = s.db.Exec(
		`INSERT INTO markers (id, type, address, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		marker.ID, string(data.Type), data.Address, string(payload), marker.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Marker{}, err
	}
	return marker, nil
}

func (s *MarkerStore) List() ([]Marker, error) {
	rows, err := s.db.Query(
		`SELECT id, payload, created_at FROM markers ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var markers []Marker
	for rows.Next() {
		var (
			marker    Marker
			payload   string
			createdAt int64
		)
		if err := rows.Scan(&marker.ID, &payload, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &marker.MarkerData); err != nil {
			return nil, fmt.Errorf("corrupt marker payload for '%s': %w", marker.ID, err)
		}
		marker.CreatedAt = time.UnixMilli(createdAt).UTC()
		markers = append(markers, marker)
	}
	return markers, rows.Err()
}

// ZonesToExplore lists the addresses of exploration-zone markers, oldest
// first.
func (s *MarkerStore) ZonesToExplore() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT address FROM markers WHERE type = ? ORDER BY created_at ASC, rowid ASC`,
		string(MarkerExploratoire))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []string
	for rows.Next() {
		var address string
		if err := rows.Scan(&address); err != nil {
			return nil, err
		}
		zones = append(zones, address)
	}
	return zones, rows.Err()
}

func (s *MarkerStore) Close() error {
	return s.db.Close()
}
