// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"therapycms/internal/models"
)

// TeamStore handles all team-member database operations.
type TeamStore struct {
	db *sql.DB
}

// NewTeamStore creates a new TeamStore with the given database connection.
func NewTeamStore(db *sql.DB) *TeamStore {
	return &TeamStore{db: db}
}

const teamColumns = `id, name, name_en, title, title_en, description, description_en,
	sort_order, status, image_id, image_en_id, created_at, updated_at`

func scanTeamMember(scanner interface{ Scan(...any) error }) (*models.TeamMember, error) {
	var m models.TeamMember
	err := scanner.Scan(
		&m.ID, &m.Name, &m.NameEN, &m.Title, &m.TitleEN, &m.Description, &m.DescriptionEN,
		&m.SortOrder, &m.Status, &m.ImageID, &m.ImageENID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns all team members ordered by sort order. When activeOnly is
// set, only ACTIVE members are returned (public view).
func (s *TeamStore) List(activeOnly bool) ([]models.TeamMember, error) {
	query := `SELECT ` + teamColumns + ` FROM team_members`
	if activeOnly {
		query += ` WHERE status = 'ACTIVE'`
	}
	query += ` ORDER BY sort_order, created_at`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var items []models.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// FindByID retrieves a team member by its UUID. Returns nil if not found.
func (s *TeamStore) FindByID(id uuid.UUID) (*models.TeamMember, error) {
	row := s.db.QueryRow(`SELECT `+teamColumns+` FROM team_members WHERE id = $1`, id)
	m, err := scanTeamMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find team member by id: %w", err)
	}
	return m, nil
}

// Create inserts a new team member and returns it with the generated ID.
func (s *TeamStore) Create(m *models.TeamMember) (*models.TeamMember, error) {
	row := s.db.QueryRow(`
		INSERT INTO team_members (name, name_en, title, title_en,
			description, description_en, sort_order, status, image_id, image_en_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+teamColumns,
		m.Name, m.NameEN, m.Title, m.TitleEN,
		m.Description, m.DescriptionEN, m.SortOrder, m.Status, m.ImageID, m.ImageENID,
	)
	result, err := scanTeamMember(row)
	if err != nil {
		return nil, fmt.Errorf("create team member: %w", err)
	}
	return result, nil
}

// Update modifies an existing team member.
func (s *TeamStore) Update(m *models.TeamMember) error {
	_, err := s.db.Exec(`
		UPDATE team_members SET
			name = $1, name_en = $2, title = $3, title_en = $4,
			description = $5, description_en = $6, sort_order = $7,
			status = $8, image_id = $9, image_en_id = $10, updated_at = NOW()
		WHERE id = $11
	`, m.Name, m.NameEN, m.Title, m.TitleEN,
		m.Description, m.DescriptionEN, m.SortOrder,
		m.Status, m.ImageID, m.ImageENID, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update team member: %w", err)
	}
	return nil
}

// Delete removes a team member by ID.
func (s *TeamStore) Delete(id uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM team_members WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	return nil
}
