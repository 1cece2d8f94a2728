package domain

import "strings"

// FilterRecords returns the records whose text or platform contains query,
// case-insensitively, in storage order. An empty query matches everything.
func FilterRecords(records []HistoryRecord, query string) []IndexedRecord {
	q := strings.ToLower(query)
	result := make([]IndexedRecord, 0, len(records))
	for i, r := range records {
		if strings.Contains(strings.ToLower(r.Text), q) || strings.Contains(strings.ToLower(r.Platform), q) {
			result = append(result, IndexedRecord{Index: i, Record: r})
		}
	}
	return result
}

// MostRecentFirst returns a reversed copy for display. Indices are kept.
func MostRecentFirst(records []IndexedRecord) []IndexedRecord {
	out := make([]IndexedRecord, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}
