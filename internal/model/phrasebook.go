package model

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mrled/humantime/pkg/phrasebook"
)

var (
	ErrNotFound      = errors.New("phrasebook not found")
	ErrAlreadyExists = errors.New("phrasebook already exists")
)

// PhrasebookRecord is a stored phrasebook document with bookkeeping
type PhrasebookRecord struct {
	Locale    string
	Document  *phrasebook.Document
	UpdatedAt time.Time
	Rev       int64 // Monotonically increasing revision number
}

// NewPhrasebookRecord wraps a validated phrasebook for storage
func NewPhrasebookRecord(pb *phrasebook.Phrasebook, updatedAt time.Time) *PhrasebookRecord {
	return &PhrasebookRecord{
		Locale:    NormalizeLocale(pb.Locale()),
		Document:  pb.Document(),
		UpdatedAt: updatedAt,
	}
}

// Phrasebook validates the stored document and builds a phrasebook from it
func (r *PhrasebookRecord) Phrasebook() (*phrasebook.Phrasebook, error) {
	if r.Document == nil {
		return nil, phrasebook.ErrInvalidPhrasebook
	}
	return phrasebook.New(*r.Document)
}

// NormalizeLocale lowercases a locale name and uses "-" as the separator,
// so "zh_CN" and "zh-cn" address the same record
func NormalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
}

// PhrasebookRepository defines the interface for storing and retrieving phrasebooks
type PhrasebookRepository interface {
	// Store saves a new phrasebook; it fails with ErrAlreadyExists if the locale is taken
	Store(ctx context.Context, record *PhrasebookRecord) error

	// Put saves a phrasebook, replacing any existing one and bumping its revision
	Put(ctx context.Context, record *PhrasebookRecord) error

	// Get retrieves a phrasebook by locale
	Get(ctx context.Context, locale string) (*PhrasebookRecord, error)

	// List retrieves all phrasebooks
	List(ctx context.Context) ([]*PhrasebookRecord, error)

	// Delete removes a phrasebook by locale
	Delete(ctx context.Context, locale string) error
}
