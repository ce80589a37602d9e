package wshub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient() *client {
	return &client{outbox: make(chan []byte, outboxSize)}
}

func TestBroadcastDeliversToAllClients(t *testing.T) {
	h := New()
	c1, c2 := newTestClient(), newTestClient()
	h.clients[c1] = struct{}{}
	h.clients[c2] = struct{}{}

	h.Broadcast([]byte("hello"))

	assert.Equal(t, []byte("hello"), <-c1.outbox)
	assert.Equal(t, []byte("hello"), <-c2.outbox)
}

func TestBroadcastDropsClientWithFullOutbox(t *testing.T) {
	h := New()
	c := newTestClient()
	h.clients[c] = struct{}{}

	for i := 0; i < outboxSize+1; i++ {
		h.Broadcast([]byte("x"))
	}

	assert.Equal(t, 0, h.Count(), "client with a full outbox is dropped")
}

func TestCountReflectsRegisteredClients(t *testing.T) {
	h := New()
	assert.Equal(t, 0, h.Count())
	h.clients[newTestClient()] = struct{}{}
	assert.Equal(t, 1, h.Count())
}
