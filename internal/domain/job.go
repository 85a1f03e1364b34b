package domain

import "time"

// JobStatus represents the moderation status of a job record.
// Values include JobStatusPending and JobStatusPublished.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusPublished JobStatus = "published"
)

// RecordTypeJob is the entity type tracked by the retention sweep.
const RecordTypeJob = "job"

// JobTemplateID is attached to a record once, at first creation, and
// never overwritten by later updates.
const JobTemplateID = "single-job-listing"

// DefaultRetentionDays is substituted whenever a submission carries a
// zero, negative, or unparsable duration.
const DefaultRetentionDays = 60

// Canonical metadata keys for a job record. The duration key is
// job_duration; there is no alias.
const (
	MetaCompany     = "company"
	MetaLocation    = "location"
	MetaJobType     = "job_type"
	MetaApplyLink   = "apply_link"
	MetaContact     = "contact"
	MetaIsAffiliate = "is_affiliate"
	MetaDuration    = "job_duration"
)

// JobRecord represents a persisted job posting in the system.
type JobRecord struct {
	ID         string    `gorm:"type:text;primaryKey" json:"id"`
	Type       string    `gorm:"type:text;not null;index:idx_job_records_type_status" json:"type"`
	Title      string    `gorm:"type:text" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	Status     JobStatus `gorm:"type:text;index:idx_job_records_type_status;default:pending" json:"status"`
	CategoryID string    `gorm:"type:text;index" json:"category_id"`
	TemplateID string    `gorm:"type:text" json:"template_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the database table name for JobRecord.
func (JobRecord) TableName() string {
	return "job_records"
}

// ExpiresAt computes the moment the record leaves its retention window.
// Parameters:
//   - retentionDays: stored duration in days; values <= 0 fall back to
//     DefaultRetentionDays.
// Returns:
//   - time.Time: CreatedAt plus the retention window.
func (r *JobRecord) ExpiresAt(retentionDays int) time.Time {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return r.CreatedAt.Add(time.Duration(retentionDays) * 24 * time.Hour)
}

// RecordMeta is one key/value entry in a record's metadata map.
type RecordMeta struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	RecordID string `gorm:"type:text;not null;index:idx_record_meta_key,unique" json:"record_id"`
	Key      string `gorm:"type:text;not null;index:idx_record_meta_key,unique" json:"key"`
	Value    string `gorm:"type:text" json:"value"`
}

// TableName returns the database table name for RecordMeta.
func (RecordMeta) TableName() string {
	return "record_meta"
}
