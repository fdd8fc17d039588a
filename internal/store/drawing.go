package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Drawing records one saved drawing: where both raster files went and
// which palette color was active at save time.
type Drawing struct {
	ID            string
	InkPath       string
	CompositePath string
	ColorIndex    int
	CreatedAt     time.Time
}

// DrawingRepository provides access to the save history.
type DrawingRepository struct {
	db *sql.DB
}

// Drawings returns the drawing repository for this store.
func (s *Store) Drawings() *DrawingRepository {
	return &DrawingRepository{db: s.db}
}

// Create inserts a new drawing record.
func (r *DrawingRepository) Create(d *Drawing) error {
	d.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO drawings (id, ink_path, composite_path, color_index, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.InkPath, d.CompositePath, d.ColorIndex, d.CreatedAt,
	)
	return err
}

// GetByID retrieves a drawing record by its ID.
func (r *DrawingRepository) GetByID(id string) (*Drawing, error) {
	d := &Drawing{}

	err := r.db.QueryRow(
		`SELECT id, ink_path, composite_path, color_index, created_at
		 FROM drawings WHERE id = ?`,
		id,
	).Scan(&d.ID, &d.InkPath, &d.CompositePath, &d.ColorIndex, &d.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return d, nil
}

// List retrieves all drawing records, newest first.
func (r *DrawingRepository) List() ([]*Drawing, error) {
	rows, err := r.db.Query(
		`SELECT id, ink_path, composite_path, color_index, created_at
		 FROM drawings ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drawings []*Drawing
	for rows.Next() {
		d := &Drawing{}
		if err := rows.Scan(&d.ID, &d.InkPath, &d.CompositePath, &d.ColorIndex, &d.CreatedAt); err != nil {
			return nil, err
		}
		drawings = append(drawings, d)
	}

	return drawings, rows.Err()
}

// Delete removes a drawing record. The PNG files on disk are left alone.
func (r *DrawingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM drawings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
