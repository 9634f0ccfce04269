package dto

import (
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/project"
	"github.com/pratik-mahalle/proftrack/internal/pkg/validator"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Employer  string    `json:"employer"`
	Role      string    `json:"role"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	StartDate string    `json:"start_date,omitempty"`
	EndDate   string    `json:"end_date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProjectRequest represents a project creation request
type CreateProjectRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Summary   string `json:"summary" validate:"max=5000"`
	Employer  string `json:"employer" validate:"max=200"`
	Role      string `json:"role" validate:"max=200"`
	Location  string `json:"location" validate:"max=200"`
	Status    string `json:"status" validate:"omitempty,oneof=planned active completed"`
	StartDate string `json:"start_date" validate:"omitempty,isodate"`
	EndDate   string `json:"end_date" validate:"omitempty,isodate"`
}

// UpdateProjectRequest represents a partial project update
type UpdateProjectRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Summary   *string `json:"summary,omitempty" validate:"omitempty,max=5000"`
	Employer  *string `json:"employer,omitempty" validate:"omitempty,max=200"`
	Role      *string `json:"role,omitempty" validate:"omitempty,max=200"`
	Location  *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=planned active completed"`
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,isodate"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,isodate"`
}

// ToProject builds a domain project owned by userID. Dates must already
// have passed validation.
func (req CreateProjectRequest) ToProject(userID int64) *project.Project {
	start, _ := validator.ParseDate(&req.StartDate)
	end, _ := validator.ParseDate(&req.EndDate)
	return &project.Project{
		UserID:    userID,
		Title:     req.Title,
		Summary:   req.Summary,
		Employer:  req.Employer,
		Role:      req.Role,
		Location:  req.Location,
		Status:    req.Status,
		StartDate: start,
		EndDate:   end,
	}
}

// ToPatch converts the request to a domain patch
func (req UpdateProjectRequest) ToPatch() project.Patch {
	start, _ := validator.ParseDate(req.StartDate)
	end, _ := validator.ParseDate(req.EndDate)
	return project.Patch{
		Title:     req.Title,
		Summary:   req.Summary,
		Employer:  req.Employer,
		Role:      req.Role,
		Location:  req.Location,
		Status:    req.Status,
		StartDate: start,
		EndDate:   end,
	}
}

// ProjectToDTO converts a domain project
func ProjectToDTO(p *project.Project) ProjectDTO {
	return ProjectDTO{
		ID:        p.ID,
		Title:     p.Title,
		Summary:   p.Summary,
		Employer:  p.Employer,
		Role:      p.Role,
		Location:  p.Location,
		Status:    p.Status,
		StartDate: formatDate(p.StartDate),
		EndDate:   formatDate(p.EndDate),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProjectsToDTO converts a slice of domain projects
func ProjectsToDTO(projects []*project.Project) []ProjectDTO {
	out := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectToDTO(p))
	}
	return out
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(validator.DateLayout)
}
