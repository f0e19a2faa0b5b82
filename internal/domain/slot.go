package domain

import (
	"encoding/json"
	"regexp"
)

// BreakSlotKey is the reserved child key under a distributor's planning
// collection that holds the break configuration. It lives alongside the
// time slots and must be excluded by key when enumerating them.
const BreakSlotKey = "break"

// clockPattern accepts strict 24-hour, zero-padded HH:MM only.
var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// TimeSlot is a single entry in a distributor's daily feeding schedule.
type TimeSlot struct {
	ID      string `json:"-"`
	Time    string `json:"time"`
	Enabled bool   `json:"enabled"`
}

// ValidClock reports whether value is a valid zero-padded HH:MM string.
// "7:30", "12:60" and "25:00" are all rejected.
func ValidClock(value string) bool {
	return clockPattern.MatchString(value)
}

// ParseClock splits a valid HH:MM string into hour and minute components.
func ParseClock(value string) (hour, minute int, ok bool) {
	if !ValidClock(value) {
		return 0, 0, false
	}
	hour = int(value[0]-'0')*10 + int(value[1]-'0')
	minute = int(value[3]-'0')*10 + int(value[4]-'0')
	return hour, minute, true
}

// Validate gates slot data before any write reaches the store.
func (s TimeSlot) Validate() error {
	if !ValidClock(s.Time) {
		return ErrInvalidSlotTime
	}
	return nil
}

// DecodeTimeSlot parses a stored slot value. Malformed or partial data
// degrades to a disabled midnight slot instead of failing the read.
func DecodeTimeSlot(id, raw string) TimeSlot {
	slot := TimeSlot{ID: id, Time: "00:00"}

	var record struct {
		Time    string `json:"time"`
		Enabled bool   `json:"enabled"`
	}
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return slot
	}

	if record.Time != "" {
		slot.Time = record.Time
	}
	slot.Enabled = record.Enabled
	return slot
}

// EncodeTimeSlot renders the stored representation of a slot.
func EncodeTimeSlot(slot TimeSlot) (string, error) {
	data, err := json.Marshal(slot)
	if err != nil {
		return "", ErrInvalidSlotData
	}
	return string(data), nil
}

// BreakConfig is the singleton pause configuration of a distributor.
type BreakConfig struct {
	DurationHours int  `json:"duration"`
	Active        bool `json:"active"`
}
