/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package catalog

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"dirpx.dev/jbridge/apis"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS classes (
		name TEXT PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		class      TEXT    NOT NULL REFERENCES classes(name),
		position   INTEGER NOT NULL,
		member_key TEXT    NOT NULL,
		name       TEXT    NOT NULL,
		descriptor TEXT    NOT NULL,
		static     INTEGER NOT NULL,
		PRIMARY KEY (class, position),
		UNIQUE (class, member_key)
	)`,
}

// SQLStore keeps the catalog in a SQLite database.
type SQLStore struct {
	db   *sql.DB
	path string
}

// Ensure SQLStore implements Store.
var _ Store = (*SQLStore)(nil)

// OpenSQL opens (creating when missing) the SQLite catalog at path.
func OpenSQL(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating tables: %w", err)
		}
	}
	return &SQLStore{db: db, path: path}, nil
}

// Load returns the members saved for class, in saved order.
func (s *SQLStore) Load(class string) ([]apis.Member, bool, error) {
	if class == "" {
		return nil, false, ErrEmptyClass
	}
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM classes WHERE name = ?`, class).Scan(&n); err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", class, err)
	}
	if n == 0 {
		return nil, false, nil
	}

	rows, err := s.db.Query(
		`SELECT member_key, name, descriptor, static FROM members WHERE class = ? ORDER BY position`, class)
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", class, err)
	}
	defer rows.Close()

	members := []apis.Member{}
	for rows.Next() {
		var m apis.Member
		if err := rows.Scan(&m.Key, &m.Name, &m.Descriptor, &m.Static); err != nil {
			return nil, false, fmt.Errorf("loading %s: %w", class, err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", class, err)
	}
	return members, true, nil
}

// Save replaces the members of class in one transaction.
func (s *SQLStore) Save(class string, members []apis.Member) error {
	if class == "" {
		return ErrEmptyClass
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("saving %s: %w", class, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM members WHERE class = ?`, class); err != nil {
		return fmt.Errorf("saving %s: %w", class, err)
	}
	if _, err := tx.Exec(`INSERT OR IGNORE INTO classes (name) VALUES (?)`, class); err != nil {
		return fmt.Errorf("saving %s: %w", class, err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO members (class, position, member_key, name, descriptor, static) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("saving %s: %w", class, err)
	}
	defer stmt.Close()
	for i, m := range members {
		if _, err := stmt.Exec(class, i, m.Key, m.Name, m.Descriptor, m.Static); err != nil {
			return fmt.Errorf("saving %s member %s: %w", class, m.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("saving %s: %w", class, err)
	}
	log.Debugf("saved %d members of %s to %s", len(members), class, s.path)
	return nil
}

// Classes lists the saved classes.
func (s *SQLStore) Classes() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM classes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing classes: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("listing classes: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
