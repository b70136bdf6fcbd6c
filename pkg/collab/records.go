package collab

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Record collection names. Handlers address collections by these keys; the
// update-status action additionally accepts them through its config.
const (
	CollectionAnfragen   = "anfragen"
	CollectionAngebote   = "angebote"
	CollectionAuftraege  = "auftraege"
	CollectionRechnungen = "rechnungen"
)

// RecordStore holds the "real" business records (requests, quotes, orders,
// invoices) the engine's actions create or mutate. Records are free-form
// maps so they flow through execution contexts and dotted-path lookups
// without conversion.
//
// All mutation is serialized behind a mutex, and every record that crosses
// the store boundary is copied: concurrent executions may append to the
// same collection or update the same record.
type RecordStore struct {
	mu          sync.Mutex
	collections map[string][]map[string]any
	saver       func(map[string][]map[string]any) error
}

// NewRecordStore creates an empty record store. The optional saver is
// invoked with a snapshot on every Save call.
func NewRecordStore(saver func(map[string][]map[string]any) error) *RecordStore {
	return &RecordStore{
		collections: map[string][]map[string]any{
			CollectionAnfragen:   {},
			CollectionAngebote:   {},
			CollectionAuftraege:  {},
			CollectionRechnungen: {},
		},
		saver: saver,
	}
}

// Append adds a copy of the record to the named collection. The caller
// keeps its own map; later updates go through UpdateByID.
func (s *RecordStore) Append(collection string, record map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections[collection] = append(s.collections[collection], copyRecord(record))
}

// FindByID returns a copy of the record with the given id from the named
// collection.
func (s *RecordStore) FindByID(collection, id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.collections[collection] {
		if record["id"] == id {
			return copyRecord(record), true
		}
	}

	return nil, false
}

// UpdateByID applies the update function to the record with the given id
// while holding the store lock. Returns false if the record does not exist.
func (s *RecordStore) UpdateByID(collection, id string, update func(record map[string]any)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.collections[collection] {
		if record["id"] == id {
			update(record)

			return true
		}
	}

	return false
}

// Records returns a snapshot of the named collection.
func (s *RecordStore) Records(collection string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]map[string]any, len(s.collections[collection]))
	for i, record := range s.collections[collection] {
		out[i] = copyRecord(record)
	}

	return out
}

// GenerateID produces a prefixed, time-ordered record id.
func (s *RecordStore) GenerateID(prefix string) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, time.Now().UnixMilli(), rand.Intn(10000))
}

// Load replaces the store contents with a previously saved snapshot.
// Collections missing from the snapshot stay empty.
func (s *RecordStore) Load(snapshot map[string][]map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, records := range snapshot {
		copied := make([]map[string]any, len(records))
		for i, record := range records {
			copied[i] = copyRecord(record)
		}

		s.collections[name] = copied
	}
}

// Save persists a snapshot through the configured saver, if any. The
// snapshot copies each record under the lock, so the saver may marshal it
// while other goroutines keep updating the store.
func (s *RecordStore) Save() error {
	s.mu.Lock()

	snapshot := make(map[string][]map[string]any, len(s.collections))
	for name, records := range s.collections {
		copied := make([]map[string]any, len(records))
		for i, record := range records {
			copied[i] = copyRecord(record)
		}

		snapshot[name] = copied
	}

	saver := s.saver
	s.mu.Unlock()

	if saver == nil {
		return nil
	}

	return saver(snapshot)
}

func copyRecord(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = v
	}

	return out
}
