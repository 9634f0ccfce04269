package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/db"
	"github.com/pratik-mahalle/proftrack/internal/domain/project"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
)

const projectColumns = `id, user_id, title, summary, employer, role, location, status,
	start_date, end_date, created_at, updated_at`

// ProjectRepository implements project.Repository
type ProjectRepository struct {
	db *db.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(database *db.DB) project.Repository {
	return &ProjectRepository{db: database}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO projects (user_id, title, summary, employer, role, location, status,
			start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, r.db.Rebind(query),
		p.UserID, p.Title, p.Summary, p.Employer, p.Role, p.Location, p.Status,
		unixOrNil(p.StartDate), unixOrNil(p.EndDate), now.Unix(), now.Unix(),
	).Scan(&p.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create project", err)
	}

	return nil
}

// GetByID retrieves a project owned by userID
func (r *ProjectRepository) GetByID(ctx context.Context, userID, id int64) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ? AND user_id = ?`

	p, err := scanProject(r.db.QueryRowContext(ctx, r.db.Rebind(query), id, userID))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Project")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get project", err)
	}
	return p, nil
}

// Update updates a project
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	p.UpdatedAt = time.Now()

	query := `
		UPDATE projects
		SET title = ?, summary = ?, employer = ?, role = ?, location = ?, status = ?,
			start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		p.Title, p.Summary, p.Employer, p.Role, p.Location, p.Status,
		unixOrNil(p.StartDate), unixOrNil(p.EndDate), p.UpdatedAt.Unix(), p.ID, p.UserID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update project", err)
	}
	return requireAffected(result, "Project")
}

// Delete deletes a project
func (r *ProjectRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM projects WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return errors.DatabaseError("Failed to delete project", err)
	}
	return requireAffected(result, "Project")
}

// List retrieves projects with filters and pagination
func (r *ProjectRepository) List(ctx context.Context, userID int64, filter project.Filter, limit, offset int) ([]*project.Project, int64, error) {
	where := ` WHERE user_id = ?`
	args := []interface{}{userID}
	if filter.Status != "" {
		where += ` AND status = ?`
		args = append(args, filter.Status)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT COUNT(*) FROM projects`+where), args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count projects", err)
	}

	query := `SELECT ` + projectColumns + ` FROM projects` + where + ` ORDER BY updated_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list projects", err)
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan project", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate projects", err)
	}

	return projects, total, nil
}

func scanProject(row rowScanner) (*project.Project, error) {
	var p project.Project
	var start, end sql.NullInt64
	var createdAt, updatedAt int64

	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Summary, &p.Employer, &p.Role, &p.Location, &p.Status,
		&start, &end, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.StartDate = timeOrNil(start)
	p.EndDate = timeOrNil(end)
	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}

func requireAffected(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound(resource)
	}
	return nil
}
