package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"photostudio/models"
)

// Transport delivers a popped message to a subscriber endpoint. A nil return
// is the subscriber's acknowledgement.
type Transport interface {
	Deliver(ctx context.Context, endpoint string, msg models.Message) error
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, endpoint string, msg models.Message) error

func (f TransportFunc) Deliver(ctx context.Context, endpoint string, msg models.Message) error {
	return f(ctx, endpoint, msg)
}

// Consumer is an in-process subscriber. Returning an error marks the
// delivery failed.
type Consumer interface {
	Consume(ctx context.Context, msg models.Message) error
}

// HTTPTransport POSTs the message as JSON; any 2xx response is an ack.
type HTTPTransport struct {
	Client *http.Client
}

func (t *HTTPTransport) Deliver(ctx context.Context, endpoint string, msg models.Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message %s: %w", msg.MessageID, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("subscriber at %s answered %d", endpoint, resp.StatusCode)
	}
	return nil
}

// LocalScheme prefixes endpoints served by in-process consumers.
const LocalScheme = "local://"

// ConsumerTransport routes local:// endpoints to registered in-process
// consumers and hands everything else to Next (typically an HTTPTransport).
type ConsumerTransport struct {
	mu        sync.RWMutex
	consumers map[string]Consumer
	Next      Transport
}

// NewConsumerTransport returns a transport with no local consumers yet.
func NewConsumerTransport(next Transport) *ConsumerTransport {
	return &ConsumerTransport{consumers: make(map[string]Consumer), Next: next}
}

// Register mounts consumer under local://name.
func (t *ConsumerTransport) Register(name string, consumer Consumer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.consumers[name] = consumer
}

func (t *ConsumerTransport) Deliver(ctx context.Context, endpoint string, msg models.Message) error {
	if strings.HasPrefix(endpoint, LocalScheme) {
		name := strings.TrimPrefix(endpoint, LocalScheme)
		t.mu.RLock()
		consumer, ok := t.consumers[name]
		t.mu.RUnlock()
		if !ok {
			return fmt.Errorf("no local consumer registered as %q", name)
		}
		return consumer.Consume(ctx, msg)
	}
	if t.Next == nil {
		return fmt.Errorf("no transport for endpoint %q", endpoint)
	}
	return t.Next.Deliver(ctx, endpoint, msg)
}
