package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jwdavis0200/TaskFlow-sub001/logging"
)

// Dispatcher forwards admitted notifications to a web-push webhook. The push
// transport behind the webhook is an external collaborator; delivery failures
// are logged and never surface to Show callers.
type Dispatcher struct {
	webhookURL string
	client     *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewDispatcher(webhookURL string) *Dispatcher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "push-webhook-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &Dispatcher{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 5 * time.Second},
		breaker:    breaker,
	}
}

// Notify posts the notification as JSON to the webhook through the circuit
// breaker. Suitable as a Queue.OnShow sink; runs the request on its own
// goroutine so Show never blocks on the network.
func (d *Dispatcher) Notify(n Notification) {
	go func() {
		_, err := d.breaker.Execute(func() (interface{}, error) {
			return nil, d.post(n)
		})
		if err != nil {
			logging.Logger.Warnf("Event ID: PUSH_DELIVERY_FAILED, Description: Failed to deliver notification %s: %v", n.ID, err)
		}
	}()
}

func (d *Dispatcher) post(n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}
	resp, err := d.client.Post(d.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push webhook returned status %d", resp.StatusCode)
	}
	return nil
}
