package model

import "time"

// EventTimeLayout matches the timestamp rendering of the activity log.
const EventTimeLayout = "Mon Jan 02 15:04:05 MST 2006"

// Event is a single activity-log entry.
type Event struct {
	Logged      time.Time
	Description string
}

// NewEvent creates an event stamped with the given time.
func NewEvent(logged time.Time, description string) Event {
	return Event{Logged: logged, Description: description}
}

func (e Event) String() string {
	return e.Logged.Format(EventTimeLayout) + "\n" + e.Description
}
