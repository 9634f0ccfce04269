package dto

import (
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/referee"
)

// RefereeDTO represents a referee in API responses
type RefereeDTO struct {
	ID           int64     `json:"id"`
	ProjectID    *int64    `json:"project_id,omitempty"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Position     string    `json:"position,omitempty"`
	Organisation string    `json:"organisation,omitempty"`
	Relationship string    `json:"relationship,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRefereeRequest represents a referee creation request
type CreateRefereeRequest struct {
	ProjectID    *int64 `json:"project_id,omitempty" validate:"omitempty,gt=0"`
	FullName     string `json:"full_name" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"max=50"`
	Position     string `json:"position" validate:"max=200"`
	Organisation string `json:"organisation" validate:"max=200"`
	Relationship string `json:"relationship" validate:"max=200"`
}

// UpdateRefereeRequest represents a partial referee update
type UpdateRefereeRequest struct {
	ProjectID    *int64  `json:"project_id,omitempty" validate:"omitempty,gt=0"`
	FullName     *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=200"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Position     *string `json:"position,omitempty" validate:"omitempty,max=200"`
	Organisation *string `json:"organisation,omitempty" validate:"omitempty,max=200"`
	Relationship *string `json:"relationship,omitempty" validate:"omitempty,max=200"`
}

// ToReferee builds a domain referee owned by userID
func (req CreateRefereeRequest) ToReferee(userID int64) *referee.Referee {
	return &referee.Referee{
		UserID:       userID,
		ProjectID:    req.ProjectID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Position:     req.Position,
		Organisation: req.Organisation,
		Relationship: req.Relationship,
	}
}

// ToPatch converts the request to a domain patch
func (req UpdateRefereeRequest) ToPatch() referee.Patch {
	return referee.Patch{
		ProjectID:    req.ProjectID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Position:     req.Position,
		Organisation: req.Organisation,
		Relationship: req.Relationship,
	}
}

// RefereeToDTO converts a domain referee
func RefereeToDTO(r *referee.Referee) RefereeDTO {
	return RefereeDTO{
		ID:           r.ID,
		ProjectID:    r.ProjectID,
		FullName:     r.FullName,
		Email:        r.Email,
		Phone:        r.Phone,
		Position:     r.Position,
		Organisation: r.Organisation,
		Relationship: r.Relationship,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// RefereesToDTO converts a slice of domain referees
func RefereesToDTO(referees []*referee.Referee) []RefereeDTO {
	out := make([]RefereeDTO, 0, len(referees))
	for _, r := range referees {
		out = append(out, RefereeToDTO(r))
	}
	return out
}
