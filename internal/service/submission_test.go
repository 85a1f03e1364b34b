package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/creolweb/jobintake/internal/domain"
)

func testSchema() domain.FormSchema {
	return domain.FormSchema{
		{ID: "1", InputName: domain.FieldTitle, Type: domain.FieldTypeText},
		{ID: "2", InputName: domain.FieldCompany, Type: domain.FieldTypeText},
		{ID: "3", InputName: domain.FieldLocation, Type: domain.FieldTypeText},
		{ID: "4", InputName: domain.FieldJobType, Type: domain.FieldTypeMultiSelect},
		{ID: "5", InputName: domain.FieldDescription, Type: domain.FieldTypeRichText},
		{ID: "6", InputName: domain.FieldApplyLink, Type: domain.FieldTypeURL},
		{ID: "7", InputName: domain.FieldContact, Type: domain.FieldTypeText},
		{ID: "8", InputName: domain.FieldIsAffiliate, Type: domain.FieldTypeCheckbox},
		{ID: "9", InputName: domain.FieldDuration, Type: domain.FieldTypeNumber},
	}
}

func newTestService() (*SubmissionService, *fakeStore, *fakeCategories) {
	store := newFakeStore()
	cats := newFakeCategories()
	svc := NewSubmissionService(store, cats, nil, nil)
	return svc, store, cats
}

func TestProcessAffiliateSubmission(t *testing.T) {
	// Scenario: affiliate box checked "Yes", duration unset.
	svc, store, cats := newTestService()

	payload := domain.SubmissionPayload{
		"1": {Scalar: "Research Assistant"},
		"2": {Scalar: "CREOL"},
		"8": {Scalar: "Yes"},
	}

	rec, err := svc.Process(context.Background(), payload, testSchema())
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if rec.Title != "Research Assistant" {
		t.Errorf("title = %q", rec.Title)
	}
	if rec.Status != domain.JobStatusPending {
		t.Errorf("status = %q, want pending", rec.Status)
	}
	if len(cats.lookups) != 1 || cats.lookups[0] != domain.CategoryAffiliateJob {
		t.Errorf("category lookups = %v, want [Affiliate Job]", cats.lookups)
	}
	if rec.CategoryID != cats.ids[domain.CategoryAffiliateJob] {
		t.Errorf("category ID = %q not resolved", rec.CategoryID)
	}

	meta, _ := store.GetAllMeta(context.Background(), rec.ID)
	if meta[domain.MetaDuration] != "60" {
		t.Errorf("job_duration = %q, want 60", meta[domain.MetaDuration])
	}
	if meta[domain.MetaIsAffiliate] != "1" {
		t.Errorf("is_affiliate = %q, want 1", meta[domain.MetaIsAffiliate])
	}
}

func TestProcessCategoryFollowsAffiliateFlag(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"yes", domain.CategoryAffiliateJob},
		{"YES", domain.CategoryAffiliateJob},
		{"1", domain.CategoryAffiliateJob},
		{"true", domain.CategoryAffiliateJob},
		{"8.1", domain.CategoryAffiliateJob},
		{"", domain.CategoryPortalJob},
		{"no", domain.CategoryPortalJob},
		{"No", domain.CategoryPortalJob},
		{"false", domain.CategoryPortalJob},
		{"0", domain.CategoryPortalJob},
	}

	for _, tc := range cases {
		t.Run("flag="+tc.raw, func(t *testing.T) {
			svc, _, cats := newTestService()

			payload := domain.SubmissionPayload{
				"1": {Scalar: "Engineer"},
				"8": {Scalar: tc.raw},
			}
			if _, err := svc.Process(context.Background(), payload, testSchema()); err != nil {
				t.Fatalf("Process returned error: %v", err)
			}
			if cats.lookups[0] != tc.want {
				t.Errorf("category = %q, want %q", cats.lookups[0], tc.want)
			}
		})
	}
}

func TestProcessInvalidApplyLinkStoredEmpty(t *testing.T) {
	svc, store, _ := newTestService()

	payload := domain.SubmissionPayload{
		"1": {Scalar: "Technician"},
		"6": {Scalar: "not a url"},
	}

	rec, err := svc.Process(context.Background(), payload, testSchema())
	if err != nil {
		t.Fatalf("submission should survive a bad apply link: %v", err)
	}

	link, _ := store.GetMeta(context.Background(), rec.ID, domain.MetaApplyLink)
	if link != "" {
		t.Errorf("apply_link = %q, want empty string", link)
	}
}

func TestProcessRetentionDaysAlwaysPositive(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"90", 90},
		{"0", 60},
		{"-7", 60},
		{"soon", 60},
		{"", 60},
	}

	for _, tc := range cases {
		t.Run("duration="+tc.raw, func(t *testing.T) {
			svc, store, _ := newTestService()

			payload := domain.SubmissionPayload{
				"1": {Scalar: "Engineer"},
				"9": {Scalar: tc.raw},
			}
			rec, err := svc.Process(context.Background(), payload, testSchema())
			if err != nil {
				t.Fatalf("Process returned error: %v", err)
			}

			got, _ := store.GetMeta(context.Background(), rec.ID, domain.MetaDuration)
			if got != strconv.Itoa(tc.want) {
				t.Errorf("job_duration = %q, want %d", got, tc.want)
			}
		})
	}
}

func TestProcessSanitizesFields(t *testing.T) {
	svc, store, _ := newTestService()

	payload := domain.SubmissionPayload{
		"1": {Scalar: "  Laser <b>Tech</b>  "},
		"4": {Options: []domain.FieldOption{
			{ID: "Full-Time", Value: "1"},
			{ID: "Internship", Value: ""},
		}},
		"5": {Scalar: `<h2>Role</h2><script>alert(1)</script><p>Align optics</p>`},
	}

	rec, err := svc.Process(context.Background(), payload, testSchema())
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if rec.Title != "Laser Tech" {
		t.Errorf("title = %q, want markup stripped and trimmed", rec.Title)
	}
	if rec.Content == "" || strings.Contains(rec.Content, "<script") {
		t.Errorf("content not sanitized: %q", rec.Content)
	}

	jobType, _ := store.GetMeta(context.Background(), rec.ID, domain.MetaJobType)
	if jobType != "Full-Time" {
		t.Errorf("job_type = %q, want only ticked options", jobType)
	}
}

func TestProcessCreateFailureWritesNothing(t *testing.T) {
	svc, store, _ := newTestService()
	store.createErr = errors.New("disk full")

	payload := domain.SubmissionPayload{"1": {Scalar: "Engineer"}}

	if _, err := svc.Process(context.Background(), payload, testSchema()); err == nil {
		t.Fatal("expected error when create fails")
	}
	if len(store.records) != 0 || len(store.meta) != 0 {
		t.Error("no partial writes expected after a failed create")
	}
}

func TestProcessMetadataFailureContinues(t *testing.T) {
	svc, store, _ := newTestService()
	store.failMetaKey = domain.MetaLocation

	payload := domain.SubmissionPayload{
		"1": {Scalar: "Engineer"},
		"2": {Scalar: "Acme"},
		"3": {Scalar: "Orlando"},
	}

	rec, err := svc.Process(context.Background(), payload, testSchema())
	if err != nil {
		t.Fatalf("metadata failure must not fail the submission: %v", err)
	}

	meta, _ := store.GetAllMeta(context.Background(), rec.ID)
	if _, ok := meta[domain.MetaLocation]; ok {
		t.Error("failed key should be absent")
	}
	if meta[domain.MetaCompany] != "Acme" {
		t.Errorf("company = %q, later keys should still be written", meta[domain.MetaCompany])
	}
	if meta[domain.MetaDuration] != "60" {
		t.Errorf("job_duration = %q, later keys should still be written", meta[domain.MetaDuration])
	}
}

func TestTemplateAttachedExactlyOnce(t *testing.T) {
	svc, store, _ := newTestService()

	payload := domain.SubmissionPayload{"1": {Scalar: "Engineer"}}
	rec, err := svc.Process(context.Background(), payload, testSchema())
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	got, _ := store.GetRecord(context.Background(), rec.ID)
	if got.TemplateID != domain.JobTemplateID {
		t.Fatalf("template = %q, want %q", got.TemplateID, domain.JobTemplateID)
	}

	// Later updates must never touch the template reference.
	if err := svc.Publish(context.Background(), rec.ID); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	svc.attachTemplate(context.Background(), rec.ID)

	got, _ = store.GetRecord(context.Background(), rec.ID)
	if got.TemplateID != domain.JobTemplateID {
		t.Errorf("template changed after update: %q", got.TemplateID)
	}
	if store.attachCalls != 1 {
		t.Errorf("attach writes = %d, want exactly 1", store.attachCalls)
	}
}

func TestPublishAdvancesStatus(t *testing.T) {
	svc, store, _ := newTestService()

	payload := domain.SubmissionPayload{"1": {Scalar: "Engineer"}}
	rec, _ := svc.Process(context.Background(), payload, testSchema())

	if err := svc.Publish(context.Background(), rec.ID); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	got, _ := store.GetRecord(context.Background(), rec.ID)
	if got.Status != domain.JobStatusPublished {
		t.Errorf("status = %q, want published", got.Status)
	}
}
