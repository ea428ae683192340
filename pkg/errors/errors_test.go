package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/memoirlab/memoir-api/pkg/i18n"
)

func Test_New(t *testing.T) {
	raw := fmt.Errorf("pq: connection refused")
	err := New("EntryLogic.CreateEntry", i18n.ERROR_INTERNAL, raw)

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode())
	assert.Equal(t, i18n.ERROR_INTERNAL, err.MessageKey())
	assert.ErrorIs(t, err, raw)
	assert.Contains(t, err.Error(), "EntryLogic.CreateEntry")
}

func Test_Code(t *testing.T) {
	err := New("trace", i18n.ERROR_NOTFOUND, nil).Code(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, err.StatusCode())
}

func Test_Trace(t *testing.T) {
	inner := New("inner.op", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	outer := Trace("outer.op", inner)

	assert.Equal(t, http.StatusBadRequest, outer.StatusCode())
	assert.Equal(t, i18n.ERROR_INVALIDARGUMENT, outer.MessageKey())
	assert.Contains(t, outer.Error(), "outer.op")
	assert.Contains(t, outer.Error(), "inner.op")
}

func Test_Trace_PlainError(t *testing.T) {
	raw := fmt.Errorf("boom")
	err := Trace("op", raw)

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode())
	assert.ErrorIs(t, err, raw)
}
