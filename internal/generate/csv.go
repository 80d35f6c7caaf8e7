package generate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ErrInvalidMetadata is wrapped by every error describing a bad metadata sheet.
var ErrInvalidMetadata = errors.New("invalid metadata")

const (
	subjectColumn = "subject_id"
	sessionColumn = "session_id"
)

var labelPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Entry is one recording session described by the metadata sheet.
type Entry struct {
	Subject    string            // Label without the sub- prefix
	Session    string            // Label without the ses- prefix
	Attributes map[string]string // Participant attributes keyed by column name
}

// Sheet is a parsed metadata sheet.
type Sheet struct {
	// Attributes are the participant columns in sheet order, excluding the
	// subject and session columns.
	Attributes []string
	Entries    []Entry
}

// Subjects returns the subject labels in order of first appearance.
func (s *Sheet) Subjects() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range s.Entries {
		if !seen[e.Subject] {
			seen[e.Subject] = true
			out = append(out, e.Subject)
		}
	}
	return out
}

// Sessions returns the session labels of subject in sheet order.
func (s *Sheet) Sessions(subject string) []string {
	var out []string
	for _, e := range s.Entries {
		if e.Subject == subject {
			out = append(out, e.Session)
		}
	}
	return out
}

// FromCSV parses a metadata sheet with a header row. subject_id and
// session_id are required; every other column is a participant attribute.
// All row problems are reported together.
func FromCSV(r io.Reader) (*Sheet, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty sheet", ErrInvalidMetadata)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrInvalidMetadata, err)
	}

	subjectIdx, sessionIdx := -1, -1
	sheet := &Sheet{}
	attrIdx := make(map[string]int)
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		switch name {
		case subjectColumn:
			subjectIdx = i
		case sessionColumn:
			sessionIdx = i
		case "":
			return nil, fmt.Errorf("%w: column %d has no name", ErrInvalidMetadata, i+1)
		default:
			if _, dup := attrIdx[name]; dup {
				return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidMetadata, name)
			}
			attrIdx[name] = i
			sheet.Attributes = append(sheet.Attributes, name)
		}
	}
	if subjectIdx < 0 || sessionIdx < 0 {
		return nil, fmt.Errorf("%w: header must contain %s and %s", ErrInvalidMetadata, subjectColumn, sessionColumn)
	}

	var errs []error
	seen := make(map[[2]string]int)
	attrs := make(map[string]map[string]string)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
		}
		line, _ := cr.FieldPos(0)
		if isBlank(record) {
			continue
		}

		subject, err := label(field(record, subjectIdx), "sub-")
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %s: %w", line, subjectColumn, err))
			continue
		}
		session, err := label(field(record, sessionIdx), "ses-")
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %s: %w", line, sessionColumn, err))
			continue
		}

		key := [2]string{subject, session}
		if first, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("line %d: sub-%s ses-%s already defined on line %d", line, subject, session, first))
			continue
		}
		seen[key] = line

		entry := Entry{Subject: subject, Session: session, Attributes: make(map[string]string, len(sheet.Attributes))}
		for _, name := range sheet.Attributes {
			entry.Attributes[name] = field(record, attrIdx[name])
		}

		if prev, ok := attrs[subject]; ok {
			for _, name := range sheet.Attributes {
				if v := entry.Attributes[name]; v != "" && prev[name] != "" && v != prev[name] {
					errs = append(errs, fmt.Errorf("line %d: sub-%s has conflicting %s values %q and %q", line, subject, name, prev[name], v))
				}
				if prev[name] == "" {
					prev[name] = entry.Attributes[name]
				}
			}
		} else {
			attrs[subject] = copyMap(entry.Attributes)
		}

		sheet.Entries = append(sheet.Entries, entry)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetadata, errors.Join(errs...))
	}
	if len(sheet.Entries) == 0 {
		return nil, fmt.Errorf("%w: no sessions", ErrInvalidMetadata)
	}

	// Participant attributes merged across rows of the same subject.
	for i := range sheet.Entries {
		sheet.Entries[i].Attributes = copyMap(attrs[sheet.Entries[i].Subject])
	}
	return sheet, nil
}

// label strips an optional prefix and checks the remaining label.
func label(raw, prefix string) (string, error) {
	v := strings.TrimPrefix(strings.TrimSpace(raw), prefix)
	if v == "" {
		return "", errors.New("missing label")
	}
	if !labelPattern.MatchString(v) {
		return "", fmt.Errorf("label %q must be alphanumeric", v)
	}
	return v, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return strings.TrimSpace(record[i])
	}
	return ""
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
