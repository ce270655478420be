// Package catalog persists normalized vehicles in SQLite, keyed by slug so
// repeated scrapes converge on one document per vehicle.
package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"autoverse/internal/models"
)

// ErrNotFound is returned when a slug lookup matches no vehicle.
var ErrNotFound = errors.New("vehicle not found")

const schema = `
CREATE TABLE IF NOT EXISTS vehicles (
	slug TEXT PRIMARY KEY,
	type TEXT NOT NULL CHECK (type IN ('car', 'bike')),
	brand TEXT NOT NULL,
	model TEXT NOT NULL,
	price INTEGER NOT NULL,
	year INTEGER NOT NULL,
	variants_json TEXT NOT NULL DEFAULT '[]',
	specs_json TEXT NOT NULL DEFAULT '{}',
	images_json TEXT NOT NULL DEFAULT '[]',
	pros_cons_json TEXT,
	description TEXT NOT NULL DEFAULT '',
	scraped_from TEXT NOT NULL,
	last_scraped TIMESTAMP NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_vehicles_type ON vehicles(type);
CREATE INDEX IF NOT EXISTS idx_vehicles_brand ON vehicles(brand);

CREATE TABLE IF NOT EXISTS scrape_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	status TEXT NOT NULL,
	vehicles_scraped INTEGER NOT NULL DEFAULT 0,
	duration_minutes REAL NOT NULL DEFAULT 0,
	errors_json TEXT NOT NULL DEFAULT '[]',
	started_at TIMESTAMP NOT NULL,
	completed_at TIMESTAMP NOT NULL
);
`

// Store is the catalog database handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog database at dbPath.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_cache_size=10000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts a vehicle or, when its slug already exists, replaces every
// field except created_at. The stored document always reflects the latest
// scrape.
func (s *Store) Upsert(v *models.Vehicle) error {
	variantsJSON, err := json.Marshal(v.Variants)
	if err != nil {
		return fmt.Errorf("failed to marshal variants: %w", err)
	}
	specsJSON, err := json.Marshal(v.Specs)
	if err != nil {
		return fmt.Errorf("failed to marshal specs: %w", err)
	}
	imagesJSON, err := json.Marshal(v.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}

	var prosCons interface{}
	if v.ProsCons != nil {
		b, err := json.Marshal(v.ProsCons)
		if err != nil {
			return fmt.Errorf("failed to marshal pros/cons: %w", err)
		}
		prosCons = string(b)
	}

	query := `
		INSERT INTO vehicles (slug, type, brand, model, price, year, variants_json,
			specs_json, images_json, pros_cons_json, description, scraped_from, last_scraped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			type = excluded.type,
			brand = excluded.brand,
			model = excluded.model,
			price = excluded.price,
			year = excluded.year,
			variants_json = excluded.variants_json,
			specs_json = excluded.specs_json,
			images_json = excluded.images_json,
			pros_cons_json = excluded.pros_cons_json,
			description = excluded.description,
			scraped_from = excluded.scraped_from,
			last_scraped = excluded.last_scraped,
			last_updated = CURRENT_TIMESTAMP
	`

	_, err = s.db.Exec(query, v.Slug, v.Type, v.Brand, v.Model, v.Price, v.Year,
		string(variantsJSON), string(specsJSON), string(imagesJSON), prosCons,
		v.Description, v.ScrapedFrom, v.LastScraped)
	if err != nil {
		return fmt.Errorf("failed to upsert vehicle %s: %w", v.Slug, err)
	}

	return nil
}

// Count returns the number of vehicles in the catalog.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM vehicles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return count, nil
}

// Stats returns catalog-level counters broken down by vehicle type.
func (s *Store) Stats() (*models.ScrapeStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE type = 'car'),
		       COUNT(*) FILTER (WHERE type = 'bike')
		FROM vehicles
	`

	var stats models.ScrapeStats
	if err := s.db.QueryRow(query).Scan(&stats.Total, &stats.Cars, &stats.Bikes); err != nil {
		return nil, fmt.Errorf("failed to get catalog stats: %w", err)
	}
	return &stats, nil
}

// GetBySlug retrieves one vehicle, or ErrNotFound.
func (s *Store) GetBySlug(slug string) (*models.Vehicle, error) {
	row := s.db.QueryRow(selectColumns+` FROM vehicles WHERE slug = ?`, slug)

	v, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle %s: %w", slug, err)
	}
	return v, nil
}

// Filter narrows and orders a catalog listing. Zero values mean "no
// constraint"; Limit <= 0 returns everything.
type Filter struct {
	Type  string // "car" or "bike"
	Brand string // matched case-insensitively
	Limit int
	Sort  string // "price_asc", "price_desc", default newest first
}

// Find lists vehicles matching the filter.
func (s *Store) Find(filter Filter) ([]*models.Vehicle, error) {
	query := selectColumns + ` FROM vehicles WHERE 1=1`
	var args []interface{}

	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, filter.Type)
	}
	if filter.Brand != "" {
		query += ` AND brand = ? COLLATE NOCASE`
		args = append(args, filter.Brand)
	}

	switch filter.Sort {
	case "price_asc":
		query += ` ORDER BY price ASC`
	case "price_desc":
		query += ` ORDER BY price DESC`
	default:
		query += ` ORDER BY last_updated DESC`
	}

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}

// All returns every vehicle in the catalog, newest first.
func (s *Store) All() ([]*models.Vehicle, error) {
	return s.Find(Filter{})
}

// Brands lists the distinct brands in the catalog with the vehicle types
// each appears under.
func (s *Store) Brands() ([]models.BrandSummary, error) {
	query := `SELECT DISTINCT brand, type FROM vehicles ORDER BY brand, type`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	var brands []models.BrandSummary
	for rows.Next() {
		var name, vehicleType string
		if err := rows.Scan(&name, &vehicleType); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}

		if n := len(brands); n > 0 && brands[n-1].Name == name {
			brands[n-1].Types = append(brands[n-1].Types, vehicleType)
			continue
		}
		brands = append(brands, models.BrandSummary{Name: name, Types: []string{vehicleType}})
	}

	return brands, rows.Err()
}

// LogSession appends a scrape run to the scrape log and fills in its ID.
func (s *Store) LogSession(session *models.ScrapeSession) error {
	errorsJSON, err := json.Marshal(session.Errors)
	if err != nil {
		return fmt.Errorf("failed to marshal session errors: %w", err)
	}

	query := `
		INSERT INTO scrape_log (status, vehicles_scraped, duration_minutes, errors_json, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query, session.Status, session.VehiclesScraped,
		session.DurationMinutes, string(errorsJSON), session.StartedAt, session.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to log scrape session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get session ID: %w", err)
	}
	session.ID = id

	return nil
}

// RecentSessions returns the latest scrape log entries, newest first.
func (s *Store) RecentSessions(limit int) ([]models.ScrapeSession, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, status, vehicles_scraped, duration_minutes, errors_json, started_at, completed_at
		FROM scrape_log
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scrape sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.ScrapeSession
	for rows.Next() {
		var session models.ScrapeSession
		var errorsJSON string

		err := rows.Scan(&session.ID, &session.Status, &session.VehiclesScraped,
			&session.DurationMinutes, &errorsJSON, &session.StartedAt, &session.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scrape session: %w", err)
		}

		if err := json.Unmarshal([]byte(errorsJSON), &session.Errors); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session errors: %w", err)
		}

		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

const selectColumns = `
	SELECT slug, type, brand, model, price, year, variants_json, specs_json,
	       images_json, pros_cons_json, description, scraped_from, last_scraped,
	       created_at, last_updated`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanVehicle(row scanner) (*models.Vehicle, error) {
	var v models.Vehicle
	var variantsJSON, specsJSON, imagesJSON string
	var prosConsJSON sql.NullString

	err := row.Scan(&v.Slug, &v.Type, &v.Brand, &v.Model, &v.Price, &v.Year,
		&variantsJSON, &specsJSON, &imagesJSON, &prosConsJSON, &v.Description,
		&v.ScrapedFrom, &v.LastScraped, &v.CreatedAt, &v.LastUpdated)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(variantsJSON), &v.Variants); err != nil {
		return nil, fmt.Errorf("failed to unmarshal variants: %w", err)
	}
	if err := json.Unmarshal([]byte(specsJSON), &v.Specs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal specs: %w", err)
	}
	if err := json.Unmarshal([]byte(imagesJSON), &v.Images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal images: %w", err)
	}
	if prosConsJSON.Valid {
		v.ProsCons = &models.ProsCons{}
		if err := json.Unmarshal([]byte(prosConsJSON.String), v.ProsCons); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pros/cons: %w", err)
		}
	}

	return &v, nil
}
