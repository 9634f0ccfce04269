package referee

import "time"

// Referee is a person who can vouch for a user's work
type Referee struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
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

// Filter contains referee filtering options
type Filter struct {
	ProjectID *int64
}

// Patch holds the fields of an update; nil fields are left unchanged
type Patch struct {
	ProjectID    *int64
	FullName     *string
	Email        *string
	Phone        *string
	Position     *string
	Organisation *string
	Relationship *string
}

// Apply copies the non-nil fields of the patch onto r
func (pt Patch) Apply(r *Referee) {
	if pt.ProjectID != nil {
		r.ProjectID = pt.ProjectID
	}
	if pt.FullName != nil {
		r.FullName = *pt.FullName
	}
	if pt.Email != nil {
		r.Email = *pt.Email
	}
	if pt.Phone != nil {
		r.Phone = *pt.Phone
	}
	if pt.Position != nil {
		r.Position = *pt.Position
	}
	if pt.Organisation != nil {
		r.Organisation = *pt.Organisation
	}
	if pt.Relationship != nil {
		r.Relationship = *pt.Relationship
	}
}
