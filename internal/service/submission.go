package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/creolweb/jobintake/internal/domain"
	"github.com/creolweb/jobintake/internal/logger"
	"github.com/creolweb/jobintake/internal/mapper"
	"github.com/creolweb/jobintake/internal/sanitize"
)

// SubmissionService converts inbound form submissions into moderated
// job records: map, sanitize, classify, build, persist. One inbound
// event drives the pipeline synchronously to completion.
type SubmissionService struct {
	store       ContentStore
	categories  CategoryStore
	logger      *logger.Logger
	defaultDays int
}

// SubmissionConfig holds configuration for the submission service.
type SubmissionConfig struct {
	DefaultRetentionDays int
}

// NewSubmissionService creates a new submission service.
// Parameters:
//   - store: persistence collaborator for records and metadata.
//   - categories: category resolution collaborator.
//   - log: base logger.
//   - cfg: service configuration; nil uses domain defaults.
// Returns:
//   - *SubmissionService: initialized service.
func NewSubmissionService(store ContentStore, categories CategoryStore, log *logger.Logger, cfg *SubmissionConfig) *SubmissionService {
	if log == nil {
		log = logger.GetDefault()
	}
	days := domain.DefaultRetentionDays
	if cfg != nil && cfg.DefaultRetentionDays > 0 {
		days = cfg.DefaultRetentionDays
	}
	return &SubmissionService{
		store:       store,
		categories:  categories,
		logger:      log,
		defaultDays: days,
	}
}

func (s *SubmissionService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// jobFields is the sanitized, typed view of one submission.
type jobFields struct {
	Title         string
	Description   string
	Company       string
	Location      string
	JobType       string
	ApplyLink     string
	Contact       string
	IsAffiliate   bool
	RetentionDays int
}

// Process runs one submission through the full pipeline.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - payload: raw field-ID-indexed submission values.
//   - schema: the live form definition delivered with the submission.
// Returns:
//   - *domain.JobRecord: the persisted record.
//   - error: non-nil only when the record itself could not be created;
//     metadata and template failures are logged and absorbed.
func (s *SubmissionService) Process(ctx context.Context, payload domain.SubmissionPayload, schema domain.FormSchema) (*domain.JobRecord, error) {
	fieldMap := mapper.Map(payload, schema)
	fields := s.sanitizeFields(ctx, fieldMap)

	categoryName := domain.CategoryFor(fields.IsAffiliate)
	categoryID, err := s.categories.FindOrCreateCategory(ctx, categoryName)
	if err != nil {
		s.log(ctx).WithError(err).WithField("category", categoryName).
			Error("Failed to resolve category")
		return nil, fmt.Errorf("failed to resolve category %q: %w", categoryName, err)
	}

	rec := &domain.JobRecord{
		Type:       domain.RecordTypeJob,
		Title:      fields.Title,
		Content:    fields.Description,
		Status:     domain.JobStatusPending,
		CategoryID: categoryID,
	}

	if err := s.store.CreateRecord(ctx, rec); err != nil {
		// No partial writes: metadata is never attempted past this point.
		s.log(ctx).WithError(err).WithField("title", fields.Title).
			Error("Failed to create job record")
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	s.writeMetadata(ctx, rec.ID, fields)
	s.attachTemplate(ctx, rec.ID)

	s.log(ctx).WithFields(logger.Fields{
		logger.FieldRecordID: rec.ID,
		"category":           categoryName,
		"retention_days":     fields.RetentionDays,
	}).Info("Job submission persisted")

	return rec, nil
}

// sanitizeFields applies the per-field normalization rules. No rule
// hard-fails; rejected inputs collapse to safe defaults and are logged
// at debug level.
func (s *SubmissionService) sanitizeFields(ctx context.Context, m domain.FieldMap) jobFields {
	rawLink := m.Get(domain.FieldApplyLink).Text
	link := sanitize.URL(rawLink)
	if link == "" && rawLink != "" {
		s.log(ctx).WithField("apply_link", rawLink).
			Debug("Apply link rejected, storing empty string")
	}

	rawDuration := m.Get(domain.FieldDuration).Text
	days := sanitize.PositiveInt(rawDuration, s.defaultDays)
	if rawDuration != "" && strconv.Itoa(days) != rawDuration {
		s.log(ctx).WithField("duration", rawDuration).
			Debugf("Duration normalized to %d days", days)
	}

	return jobFields{
		Title:         sanitize.Text(m.Get(domain.FieldTitle).Text),
		Description:   sanitize.RichText(m.Get(domain.FieldDescription).Text),
		Company:       sanitize.Text(m.Get(domain.FieldCompany).Text),
		Location:      sanitize.Text(m.Get(domain.FieldLocation).Text),
		JobType:       sanitize.JoinedText(m.Get(domain.FieldJobType)),
		ApplyLink:     link,
		Contact:       sanitize.Text(m.Get(domain.FieldContact).Text),
		IsAffiliate:   normalizeBool(m.Get(domain.FieldIsAffiliate)),
		RetentionDays: days,
	}
}

// normalizeBool treats any ticked multi-select option or truthy scalar
// as true; checkbox presence and "yes"/"no" strings both normalize
// through the same accepted-true set.
func normalizeBool(v domain.MappedValue) bool {
	if len(v.Selected) > 0 {
		return true
	}
	return mapper.Truthy(v.Text)
}

// boolMetaValue stores the affiliate flag the way the legacy records
// did: "1" or "0".
func boolMetaValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// writeMetadata persists the record's metadata map. Each write is best
// effort: a failed key is logged and the rest continue, leaving the
// record with partial metadata rather than rolling it back.
func (s *SubmissionService) writeMetadata(ctx context.Context, recordID string, f jobFields) {
	meta := []struct {
		key   string
		value string
	}{
		{domain.MetaCompany, f.Company},
		{domain.MetaLocation, f.Location},
		{domain.MetaJobType, f.JobType},
		{domain.MetaApplyLink, f.ApplyLink},
		{domain.MetaContact, f.Contact},
		{domain.MetaIsAffiliate, boolMetaValue(f.IsAffiliate)},
		{domain.MetaDuration, strconv.Itoa(f.RetentionDays)},
	}

	for _, kv := range meta {
		if err := s.store.SetMeta(ctx, recordID, kv.key, kv.value); err != nil {
			s.log(ctx).WithError(err).WithFields(logger.Fields{
				logger.FieldRecordID: recordID,
				"meta_key":           kv.key,
			}).Error("Failed to write metadata, continuing")
		}
	}
}

// attachTemplate sets the fixed template reference, guarded by the
// store's first-creation signal so later updates never overwrite it.
func (s *SubmissionService) attachTemplate(ctx context.Context, recordID string) {
	first, err := s.store.IsFirstCreation(ctx, recordID)
	if err != nil {
		s.log(ctx).WithError(err).WithField(logger.FieldRecordID, recordID).
			Error("Failed to read first-creation signal")
		return
	}
	if !first {
		return
	}
	if err := s.store.AttachTemplate(ctx, recordID, domain.JobTemplateID); err != nil {
		s.log(ctx).WithError(err).WithField(logger.FieldRecordID, recordID).
			Error("Failed to attach template")
	}
}

// Publish advances a pending record to published. Moderation is the
// only caller; the sweeper and the intake path never touch status.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - recordID: record to publish.
// Returns:
//   - error: non-nil if the record is missing or the update fails.
func (s *SubmissionService) Publish(ctx context.Context, recordID string) error {
	if err := s.store.UpdateStatus(ctx, recordID, domain.JobStatusPublished); err != nil {
		return fmt.Errorf("failed to publish record %s: %w", recordID, err)
	}
	s.log(ctx).WithField(logger.FieldRecordID, recordID).Info("Record published")
	return nil
}

// GetRecord returns a record with its metadata map.
func (s *SubmissionService) GetRecord(ctx context.Context, recordID string) (*domain.JobRecord, map[string]string, error) {
	rec, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, nil, err
	}
	meta, err := s.store.GetAllMeta(ctx, recordID)
	if err != nil {
		return nil, nil, err
	}
	return rec, meta, nil
}

// ListRecords returns records of the job type filtered by status.
func (s *SubmissionService) ListRecords(ctx context.Context, status domain.JobStatus) ([]domain.JobRecord, error) {
	return s.store.ListRecords(ctx, domain.RecordTypeJob, status)
}

// Delete hard-deletes a record and its metadata.
func (s *SubmissionService) Delete(ctx context.Context, recordID string) error {
	return s.store.DeleteRecord(ctx, recordID)
}

// Stats reports record counts by status for the job type.
func (s *SubmissionService) Stats(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, 2)
	for _, status := range []domain.JobStatus{domain.JobStatusPending, domain.JobStatusPublished} {
		n, err := s.store.CountByStatus(ctx, domain.RecordTypeJob, status)
		if err != nil {
			return nil, err
		}
		out[string(status)] = n
	}
	return out, nil
}

// Categories lists all durable categories.
func (s *SubmissionService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListCategories(ctx)
}
