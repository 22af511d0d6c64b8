package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
)

// submissionColumns are the field names of a Submission record in CSV order
var submissionColumns = []string{"id", "age", "weight", "height", "activity", "meals", "nutrients", "date"}

// SubmissionLedger is an append-only log of completed analyses
type SubmissionLedger struct {
	records []models.Submission
}

// NewSubmissionLedger creates a ledger holding a copy of records
func NewSubmissionLedger(records []models.Submission) *SubmissionLedger {
	out := make([]models.Submission, len(records))
	copy(out, records)
	return &SubmissionLedger{records: out}
}

// Append adds a record. Validation is the caller's responsibility.
func (l *SubmissionLedger) Append(s models.Submission) {
	l.records = append(l.records, s)
}

// All returns a copy of the records in append order
func (l *SubmissionLedger) All() []models.Submission {
	out := make([]models.Submission, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records
func (l *SubmissionLedger) Len() int {
	return len(l.records)
}

// ToCSV renders a header row and one row per record, joined by newlines.
// Values are not quoted or escaped: composite values use their %v form and
// an activity containing a comma shifts the row. An empty ledger yields "".
func (l *SubmissionLedger) ToCSV() string {
	if len(l.records) == 0 {
		return ""
	}

	lines := make([]string, 0, len(l.records)+1)
	lines = append(lines, strings.Join(submissionColumns, ","))
	for _, s := range l.records {
		lines = append(lines, strings.Join(submissionRow(s), ","))
	}
	return strings.Join(lines, "\n")
}

func submissionRow(s models.Submission) []string {
	return []string{
		s.ID,
		formatNumber(s.Age),
		formatNumber(s.Weight),
		formatNumber(s.Height),
		s.Activity,
		fmt.Sprintf("%v", s.Meals),
		fmt.Sprintf("%v", s.Nutrients),
		s.Date.UTC().Format(time.RFC3339Nano),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
