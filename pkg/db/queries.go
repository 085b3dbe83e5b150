package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"tool-directory/pkg/models"
)

const uniqueViolation = "23505"

// CreateTool inserts a new tool. A tool whose name matches an existing one
// case-insensitively yields ErrDuplicate.
func (db *DB) CreateTool(ctx context.Context, tool models.ToolCreate) (*models.Tool, error) {
	var created models.Tool
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO tools (name, url, description, tags, date_added)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, url, description, tags, date_added, created_at`,
		tool.Name, tool.URL, tool.Description, tool.Tags, tool.Date,
	).Scan(
		&created.ID,
		&created.Name,
		&created.URL,
		&created.Description,
		&created.Tags,
		&created.Date,
		&created.CreatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create tool: %w", err)
	}

	return &created, nil
}

// ListTools retrieves all tools, newest first
func (db *DB) ListTools(ctx context.Context) ([]models.Tool, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, url, description, tags, date_added, created_at
		 FROM tools
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tools: %w", err)
	}
	defer rows.Close()

	var tools []models.Tool
	for rows.Next() {
		var tool models.Tool
		err := rows.Scan(
			&tool.ID,
			&tool.Name,
			&tool.URL,
			&tool.Description,
			&tool.Tags,
			&tool.Date,
			&tool.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tool: %w", err)
		}
		tools = append(tools, tool)
	}

	return tools, rows.Err()
}
