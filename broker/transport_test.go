package broker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photostudio/models"
)

func TestHTTPTransportPostsMessageAsJSON(t *testing.T) {
	var received models.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := &HTTPTransport{}
	err := tr.Deliver(context.Background(), srv.URL, models.Message{
		MessageID: "m1",
		EventType: "booking.created",
	})
	require.NoError(t, err)
	assert.Equal(t, "m1", received.MessageID)
	assert.Equal(t, "booking.created", received.EventType)
}

func TestHTTPTransportNon2xxIsAFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tr := &HTTPTransport{}
	err := tr.Deliver(context.Background(), srv.URL, models.Message{MessageID: "m1"})
	assert.Error(t, err)
}

func TestConsumerTransportRoutesLocalEndpoints(t *testing.T) {
	consumer := &recordingConsumer{}
	tr := NewConsumerTransport(nil)
	tr.Register("notification", consumer)

	err := tr.Deliver(context.Background(), "local://notification", models.Message{MessageID: "m1"})
	require.NoError(t, err)
	assert.Len(t, consumer.received(), 1)
}

func TestConsumerTransportUnknownLocalConsumerFails(t *testing.T) {
	tr := NewConsumerTransport(nil)
	err := tr.Deliver(context.Background(), "local://nobody", models.Message{MessageID: "m1"})
	assert.Error(t, err)
}

func TestConsumerTransportFallsThroughToNext(t *testing.T) {
	var delivered string
	next := TransportFunc(func(ctx context.Context, endpoint string, msg models.Message) error {
		delivered = endpoint
		return nil
	})
	tr := NewConsumerTransport(next)

	err := tr.Deliver(context.Background(), "http://crm:8080/events", models.Message{MessageID: "m1"})
	require.NoError(t, err)
	assert.Equal(t, "http://crm:8080/events", delivered)
}
