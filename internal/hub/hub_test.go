package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(c *Client) []Event {
	events := make([]Event, 0, len(c.events))
	for {
		select {
		case event := <-c.events:
			events = append(events, event)
		default:
			return events
		}
	}
}

func TestEmitAllReachesEveryViewer(t *testing.T) {
	h := New()
	tv := h.Subscribe("")
	alex := h.Subscribe("alex")
	casey := h.Subscribe("casey")

	h.EmitAll(EventPhaseUpdate, map[string]any{"phaseTwo": true})

	for _, client := range []*Client{tv, alex, casey} {
		events := drain(client)
		require.Len(t, events, 1)
		assert.Equal(t, EventPhaseUpdate, events[0].Name)
	}
}

func TestEmitToScopesToCharacter(t *testing.T) {
	h := New()
	tv := h.Subscribe("")
	alex := h.Subscribe("alex")
	casey := h.Subscribe("casey")

	h.EmitTo("alex", EventDM, map[string]any{"messageId": "msg-1"})

	require.Len(t, drain(alex), 1)
	assert.Len(t, drain(tv), 0)
	assert.Len(t, drain(casey), 0)
}

func TestEmitToEmptyCharacterIsDropped(t *testing.T) {
	h := New()
	tv := h.Subscribe("")

	// An empty target must not turn into a broadcast
	h.EmitTo("", EventDM, nil)

	assert.Len(t, drain(tv), 0)
}

func TestEmitToFansOutToAllConnections(t *testing.T) {
	h := New()
	phone := h.Subscribe("alex")
	laptop := h.Subscribe("alex")

	h.EmitTo("alex", EventWalletUpdate, nil)

	assert.Len(t, drain(phone), 1)
	assert.Len(t, drain(laptop), 1)
}

func TestSlowClientDropsInsteadOfBlocking(t *testing.T) {
	h := New()
	slow := h.Subscribe("")

	for i := 0; i < clientBuffer+10; i++ {
		h.EmitAll(EventQueueUpdate, nil)
	}

	// The buffer capped the backlog and nothing deadlocked
	assert.Len(t, drain(slow), clientBuffer)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := New()
	client := h.Subscribe("alex")

	h.Unsubscribe(client)

	_, open := <-client.Events()
	assert.False(t, open)

	// Unsubscribing twice must not double-close
	h.Unsubscribe(client)

	// Emitting after unsubscribe reaches nobody
	h.EmitAll(EventBoardUpdate, nil)
}
