package models

import (
	"fmt"
	"strings"
)

// Severity is the intensity logged for a symptom on a day.
type Severity string

const (
	SeverityMild   Severity = "mild"
	SeverityMid    Severity = "mid"
	SeverityStrong Severity = "strong"
)

// ParseSeverity validates s.
func ParseSeverity(s string) (Severity, error) {
	switch sev := Severity(s); sev {
	case SeverityMild, SeverityMid, SeverityStrong:
		return sev, nil
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

// Label is the capitalised display form, e.g. "Strong".
func (s Severity) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Symptom is a tracked symptom in the user's diary.
type Symptom struct {
	ID        string
	UserID    string
	Name      string
	Order     int
	CreatedAt int64
}

// SymptomEntry records the severity of one symptom on one day.
// There is at most one entry per (SymptomID, Date).
type SymptomEntry struct {
	ID        string
	UserID    string
	SymptomID string
	Date      Date
	Severity  Severity
	CreatedAt int64
}

// DailyNote is free text attached to a day of the diary.
type DailyNote struct {
	UserID string
	Date   Date
	Note   string
}
