package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newBareClient(hub *Hub, userID uint) *Client {
	return &Client{
		ID:     uuid.New(),
		UserID: userID,
		Send:   make(chan []byte, 64),
		Hub:    hub,
	}
}

func TestHubRegisterAndNotify(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	client := newBareClient(h, 7)
	h.Register(client)

	require.Eventually(t, func() bool {
		ids := h.OnlineUserIDs()
		return len(ids) == 1 && ids[0] == 7
	}, time.Second, 5*time.Millisecond)

	h.NotifyUsers([]uint{7}, Event{Type: TypeNewPost, UserID: 7})
	select {
	case <-client.Send:
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	h.Unregister(client)
	require.Eventually(t, func() bool {
		return len(h.OnlineUserIDs()) == 0
	}, time.Second, 5*time.Millisecond)
}

// Регистрация после Stop не должна вешать горутину:
// цикл Run уже не читает каналы
func TestHubStopUnblocksRegistry(t *testing.T) {
	h := NewHub()
	go h.Run()
	h.Stop()

	done := make(chan struct{})
	go func() {
		h.Unregister(newBareClient(h, 1))
		h.Register(newBareClient(h, 2))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub blocked after stop")
	}
}
