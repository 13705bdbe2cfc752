// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"pressflow/internal/models"
)

// LanguageStore manages the content locales.
type LanguageStore struct {
	db *sql.DB
}

// NewLanguageStore returns a new LanguageStore.
func NewLanguageStore(db *sql.DB) *LanguageStore {
	return &LanguageStore{db: db}
}

const languageColumns = `id, code, name, created_at, updated_at`

func scanLanguage(scanner interface{ Scan(...any) error }) (*models.Language, error) {
	var l models.Language
	if err := scanner.Scan(&l.ID, &l.Code, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns all languages ordered by code.
func (s *LanguageStore) List() ([]models.Language, error) {
	rows, err := s.db.Query(`SELECT ` + languageColumns + ` FROM languages ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	defer rows.Close()

	var items []models.Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		items = append(items, *l)
	}
	return items, rows.Err()
}

// FindByID retrieves a language by ID. Returns nil if not found.
func (s *LanguageStore) FindByID(id uuid.UUID) (*models.Language, error) {
	row := s.db.QueryRow(`SELECT `+languageColumns+` FROM languages WHERE id = $1`, id)
	l, err := scanLanguage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find language by id: %w", err)
	}
	return l, nil
}

// FindByCode retrieves a language by its short code. Returns nil if not found.
func (s *LanguageStore) FindByCode(code string) (*models.Language, error) {
	row := s.db.QueryRow(`SELECT `+languageColumns+` FROM languages WHERE code = $1`, code)
	l, err := scanLanguage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find language by code: %w", err)
	}
	return l, nil
}

// Create inserts a new language.
func (s *LanguageStore) Create(code, name string) (*models.Language, error) {
	row := s.db.QueryRow(`
		INSERT INTO languages (code, name) VALUES ($1, $2)
		RETURNING `+languageColumns, code, name)
	l, err := scanLanguage(row)
	if err != nil {
		return nil, fmt.Errorf("create language: %w", err)
	}
	return l, nil
}

// Update modifies an existing language.
func (s *LanguageStore) Update(l *models.Language) error {
	_, err := s.db.Exec(`
		UPDATE languages SET code = $1, name = $2, updated_at = NOW() WHERE id = $3
	`, l.Code, l.Name, l.ID)
	if err != nil {
		return fmt.Errorf("update language: %w", err)
	}
	return nil
}

// Delete removes a language. Its categories cascade; content rows keep a
// foreign key and will block deletion of a language still in use.
func (s *LanguageStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM languages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete language: %w", err)
	}
	return nil
}
