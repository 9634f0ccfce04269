package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/db"
	"github.com/pratik-mahalle/proftrack/internal/domain/referee"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
)

const refereeColumns = `id, user_id, project_id, full_name, email, phone, position, organisation,
	relationship, created_at, updated_at`

// RefereeRepository implements referee.Repository
type RefereeRepository struct {
	db *db.DB
}

// NewRefereeRepository creates a new referee repository
func NewRefereeRepository(database *db.DB) referee.Repository {
	return &RefereeRepository{db: database}
}

// Create creates a new referee
func (r *RefereeRepository) Create(ctx context.Context, ref *referee.Referee) error {
	now := time.Now()
	ref.CreatedAt = now
	ref.UpdatedAt = now

	query := `
		INSERT INTO referees (user_id, project_id, full_name, email, phone, position, organisation,
			relationship, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, r.db.Rebind(query),
		ref.UserID, int64OrNil(ref.ProjectID), ref.FullName, ref.Email, ref.Phone, ref.Position,
		ref.Organisation, ref.Relationship, now.Unix(), now.Unix(),
	).Scan(&ref.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create referee", err)
	}

	return nil
}

// GetByID retrieves a referee owned by userID
func (r *RefereeRepository) GetByID(ctx context.Context, userID, id int64) (*referee.Referee, error) {
	query := `SELECT ` + refereeColumns + ` FROM referees WHERE id = ? AND user_id = ?`

	ref, err := scanReferee(r.db.QueryRowContext(ctx, r.db.Rebind(query), id, userID))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Referee")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get referee", err)
	}
	return ref, nil
}

// Update updates a referee
func (r *RefereeRepository) Update(ctx context.Context, ref *referee.Referee) error {
	ref.UpdatedAt = time.Now()

	query := `
		UPDATE referees
		SET project_id = ?, full_name = ?, email = ?, phone = ?, position = ?, organisation = ?,
			relationship = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		int64OrNil(ref.ProjectID), ref.FullName, ref.Email, ref.Phone, ref.Position, ref.Organisation,
		ref.Relationship, ref.UpdatedAt.Unix(), ref.ID, ref.UserID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update referee", err)
	}
	return requireAffected(result, "Referee")
}

// Delete deletes a referee
func (r *RefereeRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM referees WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return errors.DatabaseError("Failed to delete referee", err)
	}
	return requireAffected(result, "Referee")
}

// List retrieves the referees of a user, optionally for one project
func (r *RefereeRepository) List(ctx context.Context, userID int64, filter referee.Filter) ([]*referee.Referee, error) {
	query := `SELECT ` + refereeColumns + ` FROM referees WHERE user_id = ?`
	args := []interface{}{userID}
	if filter.ProjectID != nil {
		query += ` AND project_id = ?`
		args = append(args, *filter.ProjectID)
	}
	query += ` ORDER BY full_name, id`

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list referees", err)
	}
	defer rows.Close()

	var referees []*referee.Referee
	for rows.Next() {
		ref, err := scanReferee(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan referee", err)
		}
		referees = append(referees, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate referees", err)
	}

	return referees, nil
}

func scanReferee(row rowScanner) (*referee.Referee, error) {
	var ref referee.Referee
	var projectID sql.NullInt64
	var createdAt, updatedAt int64

	err := row.Scan(&ref.ID, &ref.UserID, &projectID, &ref.FullName, &ref.Email, &ref.Phone,
		&ref.Position, &ref.Organisation, &ref.Relationship, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	ref.ProjectID = nullInt64Ptr(projectID)
	ref.CreatedAt = time.Unix(createdAt, 0)
	ref.UpdatedAt = time.Unix(updatedAt, 0)
	return &ref, nil
}
