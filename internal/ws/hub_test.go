package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustReceiveMessage(t *testing.T, ch <-chan []byte, timeout time.Duration) []byte {
	t.Helper()
	select {
	case payload := <-ch:
		return payload
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for websocket payload")
		return nil
	}
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	clientA := NewClient(hub, nil)
	clientB := NewClient(hub, nil)
	hub.Register(clientA)
	hub.Register(clientB)

	hub.Broadcast([]byte(`{"type":"cron.updated"}`))

	require.Equal(t, `{"type":"cron.updated"}`, string(mustReceiveMessage(t, clientA.Send, time.Second)))
	require.Equal(t, `{"type":"cron.updated"}`, string(mustReceiveMessage(t, clientB.Send, time.Second)))
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil)
	hub.Register(client)
	hub.Unregister(client)

	// Send channel is closed on unregister.
	_, open := <-client.Send
	require.False(t, open)
}

func TestBroadcastEventPayload(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil)
	hub.Register(client)

	hub.BroadcastEvent(Event{Type: EventActivitiesUpdated, Count: 12})

	var event Event
	require.NoError(t, json.Unmarshal(mustReceiveMessage(t, client.Send, time.Second), &event))
	require.Equal(t, EventActivitiesUpdated, event.Type)
	require.Equal(t, 12, event.Count)
}
