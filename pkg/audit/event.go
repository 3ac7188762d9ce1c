// Package audit records one structured event per operation attempt. The core
// emits events; formatting and rotation belong to whoever owns the sink.
package audit

import "time"

// Event is the record of a single operation attempt against a device.
type Event struct {
	Timestamp time.Time     `json:"timestamp"`
	Device    string        `json:"device"`
	Operation string        `json:"operation"`
	Status    string        `json:"status"`
	Detail    string        `json:"detail,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// NewEvent creates an event stamped now.
func NewEvent(device, operation string) *Event {
	return &Event{
		Timestamp: time.Now(),
		Device:    device,
		Operation: operation,
	}
}

// WithStatus sets the classified outcome.
func (e *Event) WithStatus(status string) *Event {
	e.Status = status
	return e
}

// WithDetail sets the human-readable detail.
func (e *Event) WithDetail(detail string) *Event {
	e.Detail = detail
	return e
}

// WithDuration sets the attempt duration.
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}
