package colorful

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // register sqlite3 driver
)

// Catalog is a SQLite database of completed conversions.
type Catalog struct {
	db *sql.DB
}

// Record describes one conversion.
type Record struct {
	ID       int64
	Source   string
	SHA1     string
	Mode     Mode
	Width    int
	Height   int
	Main     string
	Residual string
	Created  time.Time
}

// NewCatalog opens, creating if necessary, the catalog stored in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (id INTEGER PRIMARY KEY NOT NULL, source TEXT NOT NULL, sha1 TEXT NOT NULL, bits INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, main TEXT NOT NULL, residual TEXT NOT NULL, created INTEGER NOT NULL, UNIQUE(sha1, bits, main))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add stores r, replacing any earlier record of the same source contents,
// mode and main output, and returns its ID.
func (c *Catalog) Add(r Record) (int64, error) {
	result, err := c.db.Exec("INSERT OR REPLACE INTO conversion (source, sha1, bits, width, height, main, residual, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", r.Source, r.SHA1, r.Mode.Bits(), r.Width, r.Height, r.Main, r.Residual, r.Created.Unix())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Find returns the conversion of the source with the given SHA-1 in the
// given mode whose main image was written to main, or nil if there is none.
func (c *Catalog) Find(sha string, mode Mode, main string) (*Record, error) {
	row := c.db.QueryRow("SELECT id, source, sha1, bits, width, height, main, residual, created FROM conversion WHERE sha1 = ? AND bits = ? AND main = ?", sha, mode.Bits(), main)
	r, err := scanRecord(row)
	switch err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return r, nil
	default:
		return nil, err
	}
}

// List returns every conversion, oldest first.
func (c *Catalog) List() ([]Record, error) {
	rows, err := c.db.Query("SELECT id, source, sha1, bits, width, height, main, residual, created FROM conversion ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*Record, error) {
	var r Record
	var bits int
	var created int64
	if err := s.Scan(&r.ID, &r.Source, &r.SHA1, &bits, &r.Width, &r.Height, &r.Main, &r.Residual, &created); err != nil {
		return nil, err
	}
	r.Mode = TenBit
	if bits == NineBit.Bits() {
		r.Mode = NineBit
	}
	r.Created = time.Unix(created, 0)
	return &r, nil
}
