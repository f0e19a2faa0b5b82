package domain

import "encoding/json"

// HistoryEntry is one recorded dispense attempt. Time is unix milliseconds,
// matching what the feeder firmware writes.
type HistoryEntry struct {
	Success  bool  `json:"success"`
	Time     int64 `json:"time"`
	Quantity int   `json:"quantity"`
}

// SuccessStats aggregates the successful dispenses of a single day.
type SuccessStats struct {
	Count         int   `json:"count"`
	TotalQuantity int   `json:"totalQuantity"`
	LatestTime    int64 `json:"latestTime"`
}

// DecodeHistoryEntry parses a stored history value. Missing fields keep
// their zero values; a malformed record decodes as an unsuccessful entry.
func DecodeHistoryEntry(raw string) HistoryEntry {
	var entry HistoryEntry
	_ = json.Unmarshal([]byte(raw), &entry)
	return entry
}

// EncodeHistoryEntry renders the stored representation of an entry.
func EncodeHistoryEntry(entry HistoryEntry) string {
	data, _ := json.Marshal(entry)
	return string(data)
}
