package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	messages [][]byte
	sendOK   bool
}

func (c *recordingClient) Send(message []byte) bool {
	c.messages = append(c.messages, message)
	return c.sendOK
}

func (c *recordingClient) Close() {}

func TestBroadcastEvent_OnlyReachesOwnLine(t *testing.T) {
	hub := GetHub()

	mine := &recordingClient{sendOK: true}
	other := &recordingClient{sendOK: true}
	hub.Register("line-a", mine)
	hub.Register("line-b", other)
	defer hub.Unregister("line-a", mine)
	defer hub.Unregister("line-b", other)

	hub.BroadcastEvent(Event{Type: "task_updated", TaskID: "t-1", LineID: "line-a"})

	require.Len(t, mine.messages, 1)
	require.Empty(t, other.messages)

	var evt Event
	require.NoError(t, json.Unmarshal(mine.messages[0], &evt))
	require.Equal(t, "task_updated", evt.Type)
	require.Equal(t, "t-1", evt.TaskID)
	require.Equal(t, 1, evt.Version) // defaulted
}

func TestBroadcastEvent_NoClientsIsNoop(t *testing.T) {
	GetHub().BroadcastEvent(Event{Type: "task_deleted", TaskID: "t-1", LineID: "line-empty"})
}

func TestUnregister_RemovesClient(t *testing.T) {
	hub := GetHub()
	c := &recordingClient{sendOK: true}
	hub.Register("line-c", c)
	hub.Unregister("line-c", c)

	hub.BroadcastEvent(Event{Type: "task_created", TaskID: "t-2", LineID: "line-c"})
	require.Empty(t, c.messages)
}
