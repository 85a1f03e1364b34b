package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/creolweb/jobintake/internal/domain"
)

// JobRepository handles job record and metadata persistence.
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *JobRepository: repository instance bound to db.
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// CreateRecord inserts a new job record. A missing ID is generated and
// CreatedAt is stamped at persistence time.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - rec: record to persist; mutated with ID and timestamps.
// Returns:
//   - error: non-nil if the insert fails.
func (r *JobRepository) CreateRecord(ctx context.Context, rec *domain.JobRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	return r.db.WithContext(ctx).Create(rec).Error
}

// GetRecord retrieves a job record by ID.
func (r *JobRepository) GetRecord(ctx context.Context, id string) (*domain.JobRecord, error) {
	var rec domain.JobRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListRecords retrieves records by type and status. The sweep relies on
// this returning Published records only when asked for them.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - recordType: entity type, e.g. domain.RecordTypeJob.
//   - status: status filter.
// Returns:
//   - []domain.JobRecord: matching records, oldest first.
//   - error: non-nil if the query fails.
func (r *JobRepository) ListRecords(ctx context.Context, recordType string, status domain.JobStatus) ([]domain.JobRecord, error) {
	var recs []domain.JobRecord
	if err := r.db.WithContext(ctx).
		Where("type = ? AND status = ?", recordType, status).
		Order("created_at ASC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// UpdateStatus advances a record's moderation status. Only the status
// column is written, so the template reference can never be clobbered
// by a moderation pass.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: record ID.
//   - status: new status.
// Returns:
//   - error: non-nil if the update fails or the record does not exist.
func (r *JobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.JobRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsFirstCreation reports whether the record has not yet had its
// template attached. Usable as the post-create guard.
func (r *JobRepository) IsFirstCreation(ctx context.Context, id string) (bool, error) {
	rec, err := r.GetRecord(ctx, id)
	if err != nil {
		return false, err
	}
	return rec.TemplateID == "", nil
}

// AttachTemplate sets the record's template reference exactly once. The
// guard lives in the WHERE clause, so a second call is a no-op even
// under concurrent callers.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: record ID.
//   - templateID: template reference to attach.
// Returns:
//   - error: non-nil if the update fails.
func (r *JobRepository) AttachTemplate(ctx context.Context, id, templateID string) error {
	return r.db.WithContext(ctx).Model(&domain.JobRecord{}).
		Where("id = ? AND (template_id IS NULL OR template_id = '')", id).
		Update("template_id", templateID).Error
}

// DeleteRecord hard-deletes a record and its metadata map together.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: record ID.
// Returns:
//   - error: non-nil if either delete fails.
func (r *JobRepository) DeleteRecord(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.RecordMeta{}, "record_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete metadata: %w", err)
		}
		if err := tx.Delete(&domain.JobRecord{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}
		return nil
	})
}

// SetMeta writes one metadata key, replacing any existing value.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - recordID: owning record ID.
//   - key: metadata key.
//   - value: metadata value.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *JobRepository) SetMeta(ctx context.Context, recordID, key, value string) error {
	meta := &domain.RecordMeta{RecordID: recordID, Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(meta).Error
}

// GetMeta reads one metadata value. A missing key yields the empty
// string, not an error; callers apply their own defaults.
func (r *JobRepository) GetMeta(ctx context.Context, recordID, key string) (string, error) {
	var meta domain.RecordMeta
	err := r.db.WithContext(ctx).
		First(&meta, "record_id = ? AND key = ?", recordID, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return meta.Value, nil
}

// GetAllMeta reads a record's full metadata map.
func (r *JobRepository) GetAllMeta(ctx context.Context, recordID string) (map[string]string, error) {
	var metas []domain.RecordMeta
	if err := r.db.WithContext(ctx).
		Find(&metas, "record_id = ?", recordID).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(metas))
	for _, m := range metas {
		out[m.Key] = m.Value
	}
	return out, nil
}

// CountByStatus counts records of a type by status.
func (r *JobRepository) CountByStatus(ctx context.Context, recordType string, status domain.JobStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.JobRecord{}).
		Where("type = ? AND status = ?", recordType, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
