package model

import "sort"

// SortBy specifies the field and order for sorting phrasebook records
type SortBy string

const (
	SortByLocale  SortBy = "locale"
	SortByUpdated SortBy = "updated"
	SortByRev     SortBy = "rev"
	SortByDefault SortBy = "" // Default sort: locale
)

// SortRecords sorts a slice of phrasebook records in place based on the specified field.
// The sortBy parameter should be one of: "locale", "updated", "rev".
// If sortBy is empty or unrecognized, records are sorted by locale.
func SortRecords(records []*PhrasebookRecord, sortBy string) {
	switch SortBy(sortBy) {
	case SortByUpdated:
		// Most recently updated first
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].UpdatedAt.After(records[j].UpdatedAt)
		})
	case SortByRev:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Rev != records[j].Rev {
				return records[i].Rev > records[j].Rev
			}
			return records[i].Locale < records[j].Locale
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Locale < records[j].Locale
		})
	}
}
