package collab

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStoreAppendAndFind(t *testing.T) {
	store := NewRecordStore(nil)

	store.Append(CollectionAngebote, map[string]any{"id": "ang-1", "status": "offen"})

	record, ok := store.FindByID(CollectionAngebote, "ang-1")
	require.True(t, ok)
	assert.Equal(t, "offen", record["status"])

	_, ok = store.FindByID(CollectionAngebote, "ang-2")
	assert.False(t, ok)

	_, ok = store.FindByID(CollectionRechnungen, "ang-1")
	assert.False(t, ok)
}

func TestRecordStoreUpdateByID(t *testing.T) {
	store := NewRecordStore(nil)
	store.Append(CollectionAngebote, map[string]any{"id": "ang-1", "status": "offen"})

	updated := store.UpdateByID(CollectionAngebote, "ang-1", func(record map[string]any) {
		record["status"] = "angenommen"
	})
	require.True(t, updated)

	record, _ := store.FindByID(CollectionAngebote, "ang-1")
	assert.Equal(t, "angenommen", record["status"])

	assert.False(t, store.UpdateByID(CollectionAngebote, "ang-2", func(map[string]any) {}))
}

func TestRecordStoreHandsOutCopies(t *testing.T) {
	store := NewRecordStore(nil)

	original := map[string]any{"id": "ang-1", "status": "offen"}
	store.Append(CollectionAngebote, original)

	// Mutating the caller's map or a returned record never reaches the
	// stored one.
	original["status"] = "verfälscht"

	found, _ := store.FindByID(CollectionAngebote, "ang-1")
	found["status"] = "verfälscht"

	store.Records(CollectionAngebote)[0]["status"] = "verfälscht"

	record, _ := store.FindByID(CollectionAngebote, "ang-1")
	assert.Equal(t, "offen", record["status"])
}

func TestRecordStoreConcurrentUpdateAndSave(t *testing.T) {
	store := NewRecordStore(func(snapshot map[string][]map[string]any) error {
		_, err := json.Marshal(snapshot)

		return err
	})

	store.Append(CollectionRechnungen, map[string]any{"id": "rg-1", "status": "offen"})

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			store.UpdateByID(CollectionRechnungen, "rg-1", func(record map[string]any) {
				record["status"] = fmt.Sprintf("status-%d", i)
			})

			assert.NoError(t, store.Save())
		}()
	}

	wg.Wait()

	record, ok := store.FindByID(CollectionRechnungen, "rg-1")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(record["status"].(string), "status-"))
}

func TestRecordStoreGenerateID(t *testing.T) {
	store := NewRecordStore(nil)

	id := store.GenerateID("ang")
	assert.True(t, strings.HasPrefix(id, "ang-"))
	assert.NotEqual(t, id, store.GenerateID("ang"))
}

func TestRecordStoreSaveSnapshot(t *testing.T) {
	var saved map[string][]map[string]any

	store := NewRecordStore(func(snapshot map[string][]map[string]any) error {
		saved = snapshot

		return nil
	})

	store.Append(CollectionAuftraege, map[string]any{"id": "auf-1"})
	require.NoError(t, store.Save())

	require.Len(t, saved[CollectionAuftraege], 1)
	assert.Equal(t, "auf-1", saved[CollectionAuftraege][0]["id"])
}

func TestRecordStoreSaveWithoutSaver(t *testing.T) {
	store := NewRecordStore(nil)
	assert.NoError(t, store.Save())
}

func TestRecordStoreLoad(t *testing.T) {
	store := NewRecordStore(nil)
	store.Load(map[string][]map[string]any{
		CollectionAnfragen: {{"id": "anf-1", "kunde": "Meier"}},
	})

	record, ok := store.FindByID(CollectionAnfragen, "anf-1")
	require.True(t, ok)
	assert.Equal(t, "Meier", record["kunde"])

	assert.Empty(t, store.Records(CollectionAngebote))
}
