package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolsuite/reportcard-api/internal/models"
)

func TestRecordStoreInsertionOrder(t *testing.T) {
	store := NewRecordStore()
	store.Put(&models.StudentRecord{DisplayName: "Beta"})
	store.Put(&models.StudentRecord{DisplayName: "Alpha"})
	store.Put(&models.StudentRecord{DisplayName: "Beta"})

	require.Equal(t, 2, store.Len())
	all := store.All()
	assert.Equal(t, "Beta", all[0].DisplayName)
	assert.Equal(t, "Alpha", all[1].DisplayName)
}

func TestRecordStoreGet(t *testing.T) {
	store := NewRecordStore()
	store.Put(&models.StudentRecord{DisplayName: "Alpha"})

	record, ok := store.Get("Alpha")
	require.True(t, ok)
	assert.Equal(t, "Alpha", record.DisplayName)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}
