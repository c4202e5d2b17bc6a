package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":          1,
		"description": "Test Transaction",
		"amount":      "100.00",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
	after := time.Now()

	assert.Equal(t, "transaction.created", evt.Type)
	assert.Equal(t, EntityTypeTransaction, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
	assert.Equal(t, time.UTC, evt.Timestamp.Location())
}

func TestEvent_JSON_Serialization(t *testing.T) {
	fixedTime := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	evt := Event{
		Type:      "goal.updated",
		Entity:    EntityTypeGoal,
		Payload:   map[string]interface{}{"id": float64(4), "status": "completed"},
		Timestamp: fixedTime,
	}

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "goal.updated", decoded["type"])
	assert.Equal(t, "goal", decoded["entity"])
	assert.Equal(t, "2025-01-15T10:30:00Z", decoded["timestamp"])
	assert.Equal(t, "completed", decoded["payload"].(map[string]interface{})["status"])
}

func TestEventHelpers(t *testing.T) {
	tests := []struct {
		name     string
		evt      Event
		wantType string
		entity   EntityType
	}{
		{"transaction created", TransactionCreated(nil), "transaction.created", EntityTypeTransaction},
		{"transaction updated", TransactionUpdated(nil), "transaction.updated", EntityTypeTransaction},
		{"transaction deleted", TransactionDeleted(1), "transaction.deleted", EntityTypeTransaction},
		{"goal created", GoalCreated(nil), "goal.created", EntityTypeGoal},
		{"goal updated", GoalUpdated(nil), "goal.updated", EntityTypeGoal},
		{"goal deleted", GoalDeleted(1), "goal.deleted", EntityTypeGoal},
		{"budget updated", BudgetUpdated(nil), "budget.updated", EntityTypeBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.evt.Type)
			assert.Equal(t, tt.entity, tt.evt.Entity)
		})
	}
}

func TestDeletedEvents_CarryID(t *testing.T) {
	data, err := TransactionDeleted(42).ToJSON()
	require.NoError(t, err)

	var decoded struct {
		Payload DeletedPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int32(42), decoded.Payload.ID)
}
