package websocket

import (
	"encoding/json"
	"time"
)

// EventType is the kind of change an event reports
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
)

// EntityType names the resource that changed
type EntityType string

const (
	EntityTypeTransaction EntityType = "transaction"
	EntityTypeGoal        EntityType = "goal"
	EntityTypeBudget      EntityType = "budget"
)

// Event is the frame pushed to subscribers, e.g.
// {"type":"goal.updated","entity":"goal","payload":{...},"timestamp":"..."}
type Event struct {
	Type      string      `json:"type"`
	Entity    EntityType  `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// DeletedPayload is the payload of every *.deleted event
type DeletedPayload struct {
	ID int32 `json:"id"`
}

// NewEvent stamps a change of kind on entity with the current UTC time
func NewEvent(kind EventType, entity EntityType, payload interface{}) Event {
	return Event{
		Type:      string(entity) + "." + string(kind),
		Entity:    entity,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON encodes the event frame
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransactionCreated(t interface{}) Event { return NewEvent(EventTypeCreated, EntityTypeTransaction, t) }
func TransactionUpdated(t interface{}) Event { return NewEvent(EventTypeUpdated, EntityTypeTransaction, t) }
func TransactionDeleted(id int32) Event {
	return NewEvent(EventTypeDeleted, EntityTypeTransaction, DeletedPayload{ID: id})
}

func GoalCreated(g interface{}) Event { return NewEvent(EventTypeCreated, EntityTypeGoal, g) }
func GoalUpdated(g interface{}) Event { return NewEvent(EventTypeUpdated, EntityTypeGoal, g) }
func GoalDeleted(id int32) Event {
	return NewEvent(EventTypeDeleted, EntityTypeGoal, DeletedPayload{ID: id})
}

// BudgetUpdated reports an upsert. Budgets are never deleted and an upsert
// cannot tell an insert from an update, so there is no budget.created.
func BudgetUpdated(b interface{}) Event { return NewEvent(EventTypeUpdated, EntityTypeBudget, b) }
