package ingest

import (
	"github.com/schoolsuite/reportcard-api/internal/models"
)

// RecordStore holds the deduplicated student records of one ingestion run in
// first-seen insertion order. It is written only by Ingest; downstream
// consumers read the final collection and must not mutate it back.
type RecordStore struct {
	order   []string
	records map[string]*models.StudentRecord
}

// NewRecordStore returns an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{records: make(map[string]*models.StudentRecord)}
}

// Get returns the record for a display name.
func (s *RecordStore) Get(displayName string) (*models.StudentRecord, bool) {
	record, ok := s.records[displayName]
	return record, ok
}

// Put inserts a record under its display name. First insertion fixes the
// position in All; re-putting an existing name is a no-op for ordering.
func (s *RecordStore) Put(record *models.StudentRecord) {
	if _, ok := s.records[record.DisplayName]; !ok {
		s.order = append(s.order, record.DisplayName)
	}
	s.records[record.DisplayName] = record
}

// All returns every record in first-seen insertion order.
func (s *RecordStore) All() []*models.StudentRecord {
	out := make([]*models.StudentRecord, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.records[name])
	}
	return out
}

// Len reports the number of distinct students.
func (s *RecordStore) Len() int {
	return len(s.order)
}
