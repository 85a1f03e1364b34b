package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creolweb/jobintake/internal/domain"
)

// fakeStore is an in-memory ContentStore for pipeline tests.
type fakeStore struct {
	records map[string]*domain.JobRecord
	meta    map[string]map[string]string
	order   []string

	nextID      int
	now         time.Time
	createErr   error
	failMetaKey string
	failDelete  map[string]bool
	attachCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records:    make(map[string]*domain.JobRecord),
		meta:       make(map[string]map[string]string),
		now:        time.Now(),
		failDelete: make(map[string]bool),
	}
}

func (f *fakeStore) CreateRecord(_ context.Context, rec *domain.JobRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("rec-%d", f.nextID)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = f.now
	}
	cp := *rec
	f.records[rec.ID] = &cp
	f.meta[rec.ID] = make(map[string]string)
	f.order = append(f.order, rec.ID)
	return nil
}

func (f *fakeStore) GetRecord(_ context.Context, id string) (*domain.JobRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeStore) ListRecords(_ context.Context, recordType string, status domain.JobStatus) ([]domain.JobRecord, error) {
	var out []domain.JobRecord
	for _, id := range f.order {
		rec, ok := f.records[id]
		if !ok {
			continue
		}
		if rec.Type == recordType && rec.Status == status {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id string, status domain.JobStatus) error {
	rec, ok := f.records[id]
	if !ok {
		return errors.New("record not found")
	}
	rec.Status = status
	return nil
}

func (f *fakeStore) DeleteRecord(_ context.Context, id string) error {
	if f.failDelete[id] {
		return errors.New("delete failed")
	}
	delete(f.records, id)
	delete(f.meta, id)
	return nil
}

func (f *fakeStore) IsFirstCreation(_ context.Context, id string) (bool, error) {
	rec, ok := f.records[id]
	if !ok {
		return false, errors.New("record not found")
	}
	return rec.TemplateID == "", nil
}

func (f *fakeStore) AttachTemplate(_ context.Context, id, templateID string) error {
	rec, ok := f.records[id]
	if !ok {
		return errors.New("record not found")
	}
	if rec.TemplateID != "" {
		return nil
	}
	f.attachCalls++
	rec.TemplateID = templateID
	return nil
}

func (f *fakeStore) SetMeta(_ context.Context, recordID, key, value string) error {
	if f.failMetaKey != "" && key == f.failMetaKey {
		return errors.New("meta write failed")
	}
	m, ok := f.meta[recordID]
	if !ok {
		return errors.New("record not found")
	}
	m[key] = value
	return nil
}

func (f *fakeStore) GetMeta(_ context.Context, recordID, key string) (string, error) {
	return f.meta[recordID][key], nil
}

func (f *fakeStore) GetAllMeta(_ context.Context, recordID string) (map[string]string, error) {
	out := make(map[string]string, len(f.meta[recordID]))
	for k, v := range f.meta[recordID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) CountByStatus(_ context.Context, recordType string, status domain.JobStatus) (int64, error) {
	recs, _ := f.ListRecords(context.Background(), recordType, status)
	return int64(len(recs)), nil
}

// fakeCategories resolves names to IDs in memory and records lookups.
type fakeCategories struct {
	ids     map[string]string
	lookups []string
	err     error
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{ids: make(map[string]string)}
}

func (f *fakeCategories) FindOrCreateCategory(_ context.Context, name string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lookups = append(f.lookups, name)
	if id, ok := f.ids[name]; ok {
		return id, nil
	}
	id := fmt.Sprintf("cat-%d", len(f.ids)+1)
	f.ids[name] = id
	return id, nil
}

func (f *fakeCategories) ListCategories(_ context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for name, id := range f.ids {
		out = append(out, domain.Category{ID: id, Name: name})
	}
	return out, nil
}
