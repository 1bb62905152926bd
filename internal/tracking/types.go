package tracking

import (
	"errors"
	"fmt"
)

// Status is the delivery state of one tracking event.
type Status string

const (
	Completed Status = "completed"
	Current   Status = "current"
	Pending   Status = "pending"
	Warning   Status = "warning"
)

var ErrUnknownStatus = errors.New("tracking: unknown status")

func (s Status) Valid() bool {
	switch s {
	case Completed, Current, Pending, Warning:
		return true
	}
	return false
}

// Event is one stop on the shipment timeline.
type Event struct {
	ID               string `yaml:"id" json:"id"`
	Title            string `yaml:"title" json:"title"`
	Description      string `yaml:"description" json:"description"`
	Date             string `yaml:"date" json:"date"`
	Time             string `yaml:"time" json:"time"`
	Location         string `yaml:"location" json:"location"`
	Status           Status `yaml:"status" json:"status"`
	OriginalLanguage string `yaml:"original_language,omitempty" json:"originalLanguage,omitempty"`
	Icon             string `yaml:"icon,omitempty" json:"icon,omitempty"`
	IsNew            bool   `yaml:"is_new,omitempty" json:"isNew,omitempty"`
}

// Summary is the header block above the timeline.
type Summary struct {
	OrderID          string `yaml:"order_id" json:"orderId"`
	EstimatedArrival string `yaml:"estimated_arrival" json:"estimatedArrival"`
	CurrentStatus    string `yaml:"current_status" json:"currentStatus"`
	Recipient        string `yaml:"recipient" json:"recipient"`
}

// Shipment is a summary plus its ordered events.
type Shipment struct {
	Summary Summary `yaml:"summary" json:"summary"`
	Events  []Event `yaml:"events" json:"events"`
}

// Validate checks statuses and id uniqueness.
func (s *Shipment) Validate() error {
	seen := make(map[string]bool, len(s.Events))
	for i, e := range s.Events {
		if e.ID == "" {
			return fmt.Errorf("tracking: event %d has no id", i)
		}
		if seen[e.ID] {
			return fmt.Errorf("tracking: duplicate event id %q", e.ID)
		}
		seen[e.ID] = true
		if !e.Status.Valid() {
			return fmt.Errorf("%w %q on event %q", ErrUnknownStatus, e.Status, e.ID)
		}
	}
	return nil
}

// IDs lists event ids in timeline order.
func (s *Shipment) IDs() []string {
	out := make([]string, len(s.Events))
	for i, e := range s.Events {
		out[i] = e.ID
	}
	return out
}

// Latest returns the most recent event that is not pending.
func (s *Shipment) Latest() (Event, bool) {
	for i := len(s.Events) - 1; i >= 0; i-- {
		if s.Events[i].Status != Pending {
			return s.Events[i], true
		}
	}
	return Event{}, false
}

// Count returns how many events carry status st.
func (s *Shipment) Count(st Status) int {
	n := 0
	for _, e := range s.Events {
		if e.Status == st {
			n++
		}
	}
	return n
}
