package mock

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndFilter(t *testing.T) {
	rec := NewRecorder()
	fixed := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	rec.now = func() time.Time { return fixed }

	d, f := rec.Record("newsletter", json.RawMessage(`{"email":"a@b.co"}`))
	assert.Equal(t, "newsletter", d.Hook)
	assert.Equal(t, fixed, d.ReceivedAt)
	assert.Equal(t, http.StatusOK, f.StatusFor())

	rec.Record("contact", json.RawMessage(`{"name":"Ada"}`))

	assert.Len(t, rec.Deliveries(""), 2)
	newsletter := rec.Deliveries("newsletter")
	require.Len(t, newsletter, 1)
	assert.Equal(t, d.ID, newsletter[0].ID)
	assert.Empty(t, rec.Deliveries("unknown"))
}

func TestSetFailureAndReset(t *testing.T) {
	rec := NewRecorder()
	rec.SetFailure(Failure{Status: http.StatusServiceUnavailable})

	_, f := rec.Record("newsletter", json.RawMessage(`{}`))
	assert.Equal(t, http.StatusServiceUnavailable, f.StatusFor())

	assert.Equal(t, 1, rec.Reset())
	assert.Empty(t, rec.Deliveries(""))

	_, f = rec.Record("newsletter", json.RawMessage(`{}`))
	assert.Equal(t, http.StatusOK, f.StatusFor())
}

func TestRecordConcurrent(t *testing.T) {
	rec := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Record("newsletter", json.RawMessage(`{}`))
		}()
	}
	wg.Wait()
	assert.Len(t, rec.Deliveries("newsletter"), 50)
}
