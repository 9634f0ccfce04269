package report

import "context"

// Service defines the interface for report business logic
type Service interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, userID, id int64) (*Report, error)
	Update(ctx context.Context, userID, id int64, patch Patch) (*Report, error)
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Report, int64, error)

	// Generate drafts a report about a project with the configured writer
	Generate(ctx context.Context, userID, projectID int64, kind string) (*Report, error)

	// Export uploads the report to the archive and records its location
	Export(ctx context.Context, userID, id int64) (*Export, error)
}

// Writer drafts report text from a prompt
type Writer interface {
	Draft(ctx context.Context, prompt string) (string, error)
}

// Archive stores exported report documents
type Archive interface {
	// Put uploads body under key and returns a location for the stored object
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}
