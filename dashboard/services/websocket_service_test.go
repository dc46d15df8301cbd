package services

import (
	"testing"

	"smartwaste/dashboard/models"
	"smartwaste/dashboard/sample"

	"github.com/stretchr/testify/assert"
)

type countingSource struct {
	calls int
}

func (s *countingSource) Render() models.DashboardView {
	s.calls++
	return RenderView(sample.Snapshot(), DefaultMapSettings)
}

func TestIsRerun(t *testing.T) {
	tests := []struct {
		input  string
		expect bool
	}{
		{"rerun", true},
		{" RERUN\n", true},
		{"Rerun", true},
		{"refresh", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, isRerun([]byte(tt.input)), "input %q", tt.input)
	}
}

func TestSessionHub_StopIsIdempotent(t *testing.T) {
	hub := NewSessionHub(&countingSource{})
	done := make(chan struct{})
	go func() {
		hub.Start()
		close(done)
	}()

	hub.Stop()
	hub.Stop()
	<-done

	assert.Equal(t, 0, hub.GetConnectedClientsCount())
	assert.Equal(t, 0, hub.GetRendersSent())
}

func TestSessionHub_SendViewSkipsUnknownClient(t *testing.T) {
	source := &countingSource{}
	hub := NewSessionHub(source)
	client := &SessionClient{hub: hub, send: make(chan []byte, 1)}

	hub.sendView(client)

	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 0, hub.GetRendersSent())
	assert.Len(t, client.send, 0)
}

func TestSessionHub_SendView(t *testing.T) {
	hub := NewSessionHub(&countingSource{})
	client := &SessionClient{hub: hub, send: make(chan []byte, 1)}
	hub.clients[client] = true

	hub.sendView(client)
	hub.sendView(client) // buffer full, dropped

	assert.Equal(t, 1, hub.GetRendersSent())
	msg := <-client.send
	assert.Contains(t, string(msg), `"type":"render"`)
	assert.Contains(t, string(msg), "Schedule immediate pickup.")
}
