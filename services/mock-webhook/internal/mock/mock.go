// Package mock is an in-memory webhook target used to exercise the relay locally.
package mock

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Delivery is one payload received by the mock webhook
type Delivery struct {
	ID         uuid.UUID       `json:"id"`
	Hook       string          `json:"hook"`
	ReceivedAt time.Time       `json:"received_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Failure controls how the webhook answers. Status 0 means 200 with a JSON body.
// Plain makes successful answers plain text instead of JSON.
type Failure struct {
	Status int  `json:"status"`
	Plain  bool `json:"plain"`
}

// Recorder keeps deliveries in memory. It is safe for concurrent use.
type Recorder struct {
	mu         sync.RWMutex
	deliveries []Delivery
	failure    Failure
	now        func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// Record stores payload under hook and returns the delivery together with the
// answer the webhook should give
func (r *Recorder) Record(hook string, payload json.RawMessage) (Delivery, Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := Delivery{
		ID:         uuid.New(),
		Hook:       hook,
		ReceivedAt: r.now().UTC(),
		Payload:    payload,
	}
	r.deliveries = append(r.deliveries, d)
	return d, r.failure
}

// Deliveries returns a copy of everything received, optionally filtered by hook
func (r *Recorder) Deliveries(hook string) []Delivery {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Delivery, 0, len(r.deliveries))
	for _, d := range r.deliveries {
		if hook == "" || d.Hook == hook {
			out = append(out, d)
		}
	}
	return out
}

// SetFailure changes how subsequent deliveries are answered
func (r *Recorder) SetFailure(f Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure = f
}

// Reset drops all deliveries and restores normal answers
func (r *Recorder) Reset() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.deliveries)
	r.deliveries = nil
	r.failure = Failure{}
	return n
}

// StatusFor returns the HTTP status the webhook answers with
func (f Failure) StatusFor() int {
	if f.Status == 0 {
		return http.StatusOK
	}
	return f.Status
}
