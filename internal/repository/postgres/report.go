package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/db"
	"github.com/pratik-mahalle/proftrack/internal/domain/report"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
)

const reportColumns = `id, user_id, project_id, title, kind, content, status, archive_location,
	created_at, updated_at`

// ReportRepository implements report.Repository
type ReportRepository struct {
	db *db.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(database *db.DB) report.Repository {
	return &ReportRepository{db: database}
}

// Create creates a new report
func (r *ReportRepository) Create(ctx context.Context, rep *report.Report) error {
	now := time.Now()
	rep.CreatedAt = now
	rep.UpdatedAt = now

	query := `
		INSERT INTO reports (user_id, project_id, title, kind, content, status, archive_location,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, r.db.Rebind(query),
		rep.UserID, int64OrNil(rep.ProjectID), rep.Title, rep.Kind, rep.Content, rep.Status,
		rep.ArchiveLocation, now.Unix(), now.Unix(),
	).Scan(&rep.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create report", err)
	}

	return nil
}

// GetByID retrieves a report owned by userID
func (r *ReportRepository) GetByID(ctx context.Context, userID, id int64) (*report.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ? AND user_id = ?`

	rep, err := scanReport(r.db.QueryRowContext(ctx, r.db.Rebind(query), id, userID))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Report")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get report", err)
	}
	return rep, nil
}

// Update updates a report
func (r *ReportRepository) Update(ctx context.Context, rep *report.Report) error {
	rep.UpdatedAt = time.Now()

	query := `
		UPDATE reports
		SET project_id = ?, title = ?, kind = ?, content = ?, status = ?, archive_location = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		int64OrNil(rep.ProjectID), rep.Title, rep.Kind, rep.Content, rep.Status, rep.ArchiveLocation,
		rep.UpdatedAt.Unix(), rep.ID, rep.UserID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update report", err)
	}
	return requireAffected(result, "Report")
}

// Delete deletes a report
func (r *ReportRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM reports WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return errors.DatabaseError("Failed to delete report", err)
	}
	return requireAffected(result, "Report")
}

// List retrieves reports with filters and pagination
func (r *ReportRepository) List(ctx context.Context, userID int64, filter report.Filter, limit, offset int) ([]*report.Report, int64, error) {
	where := ` WHERE user_id = ?`
	args := []interface{}{userID}
	if filter.ProjectID != nil {
		where += ` AND project_id = ?`
		args = append(args, *filter.ProjectID)
	}
	if filter.Kind != "" {
		where += ` AND kind = ?`
		args = append(args, filter.Kind)
	}
	if filter.Status != "" {
		where += ` AND status = ?`
		args = append(args, filter.Status)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT COUNT(*) FROM reports`+where), args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count reports", err)
	}

	query := `SELECT ` + reportColumns + ` FROM reports` + where + ` ORDER BY updated_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list reports", err)
	}
	defer rows.Close()

	var reports []*report.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan report", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate reports", err)
	}

	return reports, total, nil
}

func scanReport(row rowScanner) (*report.Report, error) {
	var rep report.Report
	var projectID sql.NullInt64
	var location sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(&rep.ID, &rep.UserID, &projectID, &rep.Title, &rep.Kind, &rep.Content, &rep.Status,
		&location, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	rep.ProjectID = nullInt64Ptr(projectID)
	rep.ArchiveLocation = stringOrNil(location)
	rep.CreatedAt = time.Unix(createdAt, 0)
	rep.UpdatedAt = time.Unix(updatedAt, 0)
	return &rep, nil
}
