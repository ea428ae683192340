package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// happened_on is a DATE column; read back raw it scans into the string field
// as an RFC3339 timestamp instead of the calendar date callers store.
func Test_EntrySelectColumns_DateAsText(t *testing.T) {
	s := &EntryStore{}
	cols := s.selectColumns()

	assert.Contains(t, cols, "to_char(happened_on, 'YYYY-MM-DD') AS happened_on")
	assert.NotContains(t, cols, "happened_on")
}
