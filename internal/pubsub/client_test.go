package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestProcessMessage(t *testing.T) {
	type payload struct {
		SessionID   string `msgpack:"session_id"`
		MatchSecond int    `msgpack:"match_second"`
	}

	c := &client{}
	data, err := msgpack.Marshal(payload{SessionID: "session-1", MatchSecond: 900})
	require.NoError(t, err)

	var got payload
	require.NoError(t, c.ProcessMessage(data, &got))
	assert.Equal(t, "session-1", got.SessionID)
	assert.Equal(t, 900, got.MatchSecond)

	assert.Error(t, c.ProcessMessage([]byte{0xc1}, &got))
}

func TestMockRecordsCalls(t *testing.T) {
	m := NewMock("test-project")
	require.NoError(t, m.SendMessage(EventPlayerTimes, "payload"))
	require.Len(t, m.SendMessageCalls, 1)
	assert.Equal(t, string(EventPlayerTimes), m.SendMessageCalls[0].Topic)

	m.Reset()
	assert.Empty(t, m.SendMessageCalls)
}
