package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Event is a change notification received from the /ws endpoint
type Event struct {
	Type      string          `json:"type"`
	Entity    string          `json:"entity"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

type deletedPayload struct {
	ID int32 `json:"id"`
}

// ApplyEvent merges a change notification into the store. Applying the same
// event twice leaves the state unchanged. Unknown event types are ignored.
func (s *Store) ApplyEvent(evt Event) error {
	switch evt.Type {
	case "transaction.created", "transaction.updated":
		var t api.Transaction
		if err := json.Unmarshal(evt.Payload, &t); err != nil {
			return fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		s.update(func(st *State) {
			st.Transactions = prependOrReplace(st.Transactions, t, transactionID)
		})
	case "transaction.deleted":
		var p deletedPayload
		if err := json.Unmarshal(evt.Payload, &p); err != nil {
			return fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		s.update(func(st *State) {
			st.Transactions = removeByID(st.Transactions, p.ID, transactionID)
		})
	case "goal.created", "goal.updated":
		var g api.Goal
		if err := json.Unmarshal(evt.Payload, &g); err != nil {
			return fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		s.update(func(st *State) {
			st.Goals = prependOrReplace(st.Goals, g, goalID)
		})
	case "goal.deleted":
		var p deletedPayload
		if err := json.Unmarshal(evt.Payload, &p); err != nil {
			return fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		s.update(func(st *State) {
			st.Goals = removeByID(st.Goals, p.ID, goalID)
		})
	case "budget.updated":
		var b api.Budget
		if err := json.Unmarshal(evt.Payload, &b); err != nil {
			return fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		s.update(func(st *State) {
			st.Budgets = upsertBudget(st.Budgets, b)
		})
	}
	return nil
}

// Subscribe connects to the event stream at wsURL and calls onEvent for every
// message until ctx is cancelled or the connection fails. A nil dialer uses
// websocket.DefaultDialer.
func Subscribe(ctx context.Context, wsURL string, dialer *websocket.Dialer, onEvent func(Event)) error {
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	conn, resp, err := dialer.DialContext(ctx, wsURL, http.Header{})
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		var evt Event
		if err := json.Unmarshal(data, &evt); err != nil {
			log.Warn().Err(err).Msg("Skipping malformed event")
			continue
		}
		onEvent(evt)
	}
}

// Follow subscribes the store to the event stream until ctx is done
func (s *Store) Follow(ctx context.Context, wsURL string, dialer *websocket.Dialer) error {
	err := Subscribe(ctx, wsURL, dialer, func(evt Event) {
		if err := s.ApplyEvent(evt); err != nil {
			log.Warn().Err(err).Str("event_type", evt.Type).Msg("Failed to apply event")
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
