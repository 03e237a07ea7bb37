package model

import "strings"

// RecordFilter contains criteria for filtering phrasebook records.
// All criteria are optional; only non-empty slices are applied.
// Within each field, values are combined with OR logic (any value matches).
// Between fields, criteria are combined with AND logic (all fields must match).
type RecordFilter struct {
	// Locales matches a locale or any of its sub-locales, so "en" matches
	// "en" and "en-short" but not "eng"
	Locales []string

	// Contains matches a case-insensitive substring of the description
	Contains []string
}

// FilterRecords filters a slice of phrasebook records based on the provided criteria.
// Returns a new slice containing only records that match the filter.
// Empty filter slices are ignored (treated as "match all").
func FilterRecords(records []*PhrasebookRecord, filter RecordFilter) []*PhrasebookRecord {
	if len(filter.Locales) == 0 && len(filter.Contains) == 0 {
		return records
	}

	var filtered []*PhrasebookRecord
	for _, record := range records {
		if len(filter.Locales) > 0 && !matchesLocale(record.Locale, filter.Locales) {
			continue
		}
		if len(filter.Contains) > 0 && !matchesDescription(record, filter.Contains) {
			continue
		}
		filtered = append(filtered, record)
	}

	return filtered
}

func matchesLocale(locale string, wanted []string) bool {
	locale = NormalizeLocale(locale)
	for _, w := range wanted {
		w = NormalizeLocale(w)
		if locale == w || strings.HasPrefix(locale, w+"-") {
			return true
		}
	}
	return false
}

func matchesDescription(record *PhrasebookRecord, wanted []string) bool {
	if record.Document == nil {
		return false
	}
	desc := strings.ToLower(record.Document.Description)
	for _, w := range wanted {
		if strings.Contains(desc, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
