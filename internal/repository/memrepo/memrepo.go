package memrepo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mrled/humantime/internal/model"
)

// MemoryRepository is an in-memory implementation of PhrasebookRepository optionally backed by a JSON file
type MemoryRepository struct {
	mu       sync.RWMutex
	data     map[string]*model.PhrasebookRecord
	filePath string
}

var _ model.PhrasebookRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates a new in-memory repository without persistence.
// Data is stored only in memory and will be lost when the process terminates.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data:     make(map[string]*model.PhrasebookRecord),
		filePath: "",
	}
}

// NewMemoryRepositoryWithPersistence creates a new in-memory repository backed by a JSON file.
// The repository will load existing data from the file on initialization and persist
// all changes (Store, Put, Delete) to the file automatically.
func NewMemoryRepositoryWithPersistence(filePath string) (*MemoryRepository, error) {
	repo := &MemoryRepository{
		data:     make(map[string]*model.PhrasebookRecord),
		filePath: filePath,
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	// Try to load existing data from file
	if err := repo.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return repo, nil
}

// NewMemoryRepositoryFromJsonString creates a new in-memory repository initialized with data from a JSON string.
// The repository will not be backed by a file and will not persist changes.
// The JSON string should contain an array of PhrasebookRecord objects.
func NewMemoryRepositoryFromJsonString(jsonString string) (*MemoryRepository, error) {
	repo := NewMemoryRepository()
	if err := repo.loadFromReader(strings.NewReader(jsonString)); err != nil {
		return nil, err
	}
	return repo, nil
}

// loadFromReader reads JSON data from a reader and populates the in-memory data
func (r *MemoryRepository) loadFromReader(reader io.Reader) error {
	var records []*model.PhrasebookRecord
	if err := json.NewDecoder(reader).Decode(&records); err != nil {
		return err
	}

	r.data = make(map[string]*model.PhrasebookRecord)
	for _, rec := range records {
		key := model.NormalizeLocale(rec.Locale)

		// DynamoDB would silently overwrite; keep the last one but say so.
		if _, exists := r.data[key]; exists {
			slog.Warn("duplicate phrasebook entry, keeping last occurrence", slog.String("locale", rec.Locale))
		}

		r.data[key] = rec
	}

	return nil
}

// load reads the JSON file and populates the in-memory data
func (r *MemoryRepository) load() error {
	file, err := os.Open(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	if stat.Size() == 0 {
		return nil
	}

	return r.loadFromReader(file)
}

// save writes the in-memory data to the JSON file
// If filePath is empty, this is a no-op
func (r *MemoryRepository) save() error {
	if r.filePath == "" {
		return nil
	}

	file, err := os.Create(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.sorted())
}

// sorted returns the records ordered by locale so the file is stable
func (r *MemoryRepository) sorted() []*model.PhrasebookRecord {
	records := make([]*model.PhrasebookRecord, 0, len(r.data))
	for _, rec := range r.data {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Locale < records[j].Locale
	})
	return records
}

// Store saves a new phrasebook
func (r *MemoryRepository) Store(ctx context.Context, record *model.PhrasebookRecord) error {
	if record == nil {
		return errors.New("phrasebook record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := model.NormalizeLocale(record.Locale)
	if _, exists := r.data[key]; exists {
		return model.ErrAlreadyExists
	}

	stored := *record
	stored.Locale = key
	stored.Rev = 1
	r.data[key] = &stored
	return r.save()
}

// Put saves a phrasebook whether or not the locale already exists
func (r *MemoryRepository) Put(ctx context.Context, record *model.PhrasebookRecord) error {
	if record == nil {
		return errors.New("phrasebook record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := model.NormalizeLocale(record.Locale)
	stored := *record
	stored.Locale = key
	stored.Rev = 1
	if existing, ok := r.data[key]; ok {
		stored.Rev = existing.Rev + 1
	}
	r.data[key] = &stored
	return r.save()
}

// Get retrieves a phrasebook by locale
func (r *MemoryRepository) Get(ctx context.Context, locale string) (*model.PhrasebookRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.data[model.NormalizeLocale(locale)]
	if !exists {
		return nil, model.ErrNotFound
	}

	return record, nil
}

// List retrieves all phrasebooks ordered by locale
func (r *MemoryRepository) List(ctx context.Context) ([]*model.PhrasebookRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(), nil
}

// Delete removes a phrasebook by locale
func (r *MemoryRepository) Delete(ctx context.Context, locale string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := model.NormalizeLocale(locale)
	if _, exists := r.data[key]; !exists {
		return model.ErrNotFound
	}

	delete(r.data, key)
	return r.save()
}
