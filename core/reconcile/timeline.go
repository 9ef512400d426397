package reconcile

import "time"

// EventKey identifies a lifecycle stage on a timeline.
type EventKey string

const (
	EventCreated   EventKey = "created"
	EventScheduled EventKey = "scheduled"
	EventEntry     EventKey = "entry"
	EventExit      EventKey = "exit"
	EventPayment   EventKey = "payment"
	EventCancelled EventKey = "cancelled"
	EventExpired   EventKey = "expired"
)

// lifecycleOrder is the append order of timeline events. It is a stage
// order, not a clock order.
var lifecycleOrder = []EventKey{
	EventCreated,
	EventScheduled,
	EventEntry,
	EventExit,
	EventPayment,
	EventCancelled,
	EventExpired,
}

// relevantEvents lists the stages each final status actually went through.
var relevantEvents = map[Status][]EventKey{
	StatusPending:       {EventCreated, EventScheduled},
	StatusConfirmed:     {EventCreated, EventScheduled},
	StatusActive:        {EventCreated, EventScheduled, EventEntry, EventPayment},
	StatusFinalized:     {EventCreated, EventScheduled, EventEntry, EventExit},
	StatusFinalizedPaid: {EventCreated, EventScheduled, EventEntry, EventExit, EventPayment},
	StatusCancelled:     {EventCreated, EventCancelled},
	StatusExpired:       {EventCreated, EventExpired},
	StatusNoShow:        {EventCreated, EventScheduled, EventExpired},
}

// IsRelevant reports whether key belongs on the timeline of an operation
// with the given final status. Unknown statuses only keep creation and
// scheduling.
func IsRelevant(key EventKey, status Status) bool {
	keys, ok := relevantEvents[status]
	if !ok {
		return key == EventCreated || key == EventScheduled
	}
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// DateFor returns the Dates field backing an event key.
func DateFor(d Dates, key EventKey) *time.Time {
	switch key {
	case EventCreated:
		return d.Created
	case EventScheduled:
		return d.ScheduledStart
	case EventEntry:
		return d.Entry
	case EventExit:
		return d.Exit
	case EventPayment:
		return d.Payment
	case EventCancelled:
		return d.Cancelled
	case EventExpired:
		return d.Expired
	}
	return nil
}

// BuildTimeline emits one event per non-null, status-relevant timestamp in
// lifecycle order. reservationStatus only affects labels.
func BuildTimeline(d Dates, status, reservationStatus Status) []TimelineEvent {
	events := make([]TimelineEvent, 0, len(lifecycleOrder))
	for _, key := range lifecycleOrder {
		if !IsRelevant(key, status) {
			continue
		}
		at := DateFor(d, key)
		if at == nil {
			continue
		}
		events = append(events, TimelineEvent{
			Key:   key,
			Label: eventLabel(key, status, reservationStatus),
			At:    *at,
		})
	}
	return events
}

func eventLabel(key EventKey, status, reservationStatus Status) string {
	switch key {
	case EventCreated:
		return "Reservation created"
	case EventScheduled:
		switch reservationStatus {
		case StatusConfirmed:
			return "Reservation confirmed"
		case StatusPending:
			return "Reservation pending confirmation"
		}
		return "Scheduled start"
	case EventEntry:
		return "Vehicle entered"
	case EventExit:
		return "Vehicle exited"
	case EventPayment:
		return "Payment completed"
	case EventCancelled:
		return "Reservation cancelled"
	case EventExpired:
		if status == StatusNoShow {
			return "Marked as no-show"
		}
		return "Reservation expired"
	}
	return string(key)
}
