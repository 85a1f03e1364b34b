package service

import (
	"context"

	"github.com/creolweb/jobintake/internal/domain"
)

// ContentStore is the persistence collaborator for job records and
// their metadata maps. The repository package provides the GORM-backed
// implementation; tests substitute fakes.
type ContentStore interface {
	CreateRecord(ctx context.Context, rec *domain.JobRecord) error
	GetRecord(ctx context.Context, id string) (*domain.JobRecord, error)
	ListRecords(ctx context.Context, recordType string, status domain.JobStatus) ([]domain.JobRecord, error)
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus) error
	DeleteRecord(ctx context.Context, id string) error

	IsFirstCreation(ctx context.Context, id string) (bool, error)
	AttachTemplate(ctx context.Context, id, templateID string) error

	SetMeta(ctx context.Context, recordID, key, value string) error
	GetMeta(ctx context.Context, recordID, key string) (string, error)
	GetAllMeta(ctx context.Context, recordID string) (map[string]string, error)

	CountByStatus(ctx context.Context, recordType string, status domain.JobStatus) (int64, error)
}

// CategoryStore resolves category names to durable identifiers. The
// find-or-create path must be race-safe at the name level.
type CategoryStore interface {
	FindOrCreateCategory(ctx context.Context, name string) (string, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
