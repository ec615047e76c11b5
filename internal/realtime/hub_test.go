package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	messages [][]byte
}

func (f *fakeClient) Send(message []byte) bool {
	f.messages = append(f.messages, message)
	return true
}

func (f *fakeClient) Close() {}

func TestHubBroadcastIsScopedToUser(t *testing.T) {
	hub := &Hub{userToClients: make(map[uint]map[Client]struct{})}

	alice := &fakeClient{}
	bob := &fakeClient{}
	hub.Register(1, alice)
	hub.Register(2, bob)

	hub.Notify(1, "task_created", 42)

	require.Len(t, alice.messages, 1)
	require.Empty(t, bob.messages)

	var evt Event
	require.NoError(t, json.Unmarshal(alice.messages[0], &evt))
	require.Equal(t, "task_created", evt.Type)
	require.Equal(t, uint(42), evt.EntityID)
	require.Equal(t, uint(1), evt.UserID)
	require.NotEmpty(t, evt.EventID)
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := &Hub{userToClients: make(map[uint]map[Client]struct{})}

	c := &fakeClient{}
	hub.Register(7, c)
	hub.Unregister(7, c)

	hub.Notify(7, "task_updated", 1)
	require.Empty(t, c.messages)
}

func TestGetHubReturnsSingleton(t *testing.T) {
	require.Same(t, GetHub(), GetHub())
}
