// Package notification provides the fire-and-forget toast system for the
// vitrine storefront. Cart and wishlist outcomes are announced to the
// browser over the WebSocket hub and, optionally, mirrored to Slack or an
// arbitrary webhook for operational visibility.
//
// Define a Notification:
//
//	type CartToast struct{ Line models.CartLine }
//	func (n *CartToast) Via() []string { return []string{"ws"} }
//	func (n *CartToast) ToToast() notification.ToastData {
//	    return notification.ToastData{Level: "success", Message: "Added to cart"}
//	}
//
// Send (never blocks the request path):
//
//	notification.SendAsync(sessionID, &CartToast{Line: line})
package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/vitrine/pkg/logger"
	"github.com/shashiranjanraj/vitrine/pkg/ws"
)

// ------------------- Channel data structs -------------------

// ToastData is the payload pushed to connected storefront clients.
type ToastData struct {
	Level   string      `json:"level"` // "success" | "error" | "info"
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SlackData carries a Slack message payload.
type SlackData struct {
	WebhookURL  string // override default if set
	Text        string
	Attachments []SlackAttachment
}

// SlackAttachment is a single Slack message attachment block.
type SlackAttachment struct {
	Color  string `json:"color,omitempty"` // "good" | "warning" | "danger"
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Footer string `json:"footer,omitempty"`
}

// WebhookData carries an arbitrary JSON payload to POST to a URL.
type WebhookData struct {
	URL     string
	Payload interface{}
	Headers map[string]string
}

// ------------------- Notification interface -------------------

// Notification is the interface every notification must satisfy.
type Notification interface {
	// Via returns the list of channel names: "ws", "slack", "webhook".
	Via() []string
}

// Toastable can be implemented to support the browser push channel.
type Toastable interface {
	ToToast() ToastData
}

// Slackable can be implemented to support the Slack channel.
type Slackable interface {
	ToSlack() SlackData
}

// Webhookable can be implemented to support the webhook channel.
type Webhookable interface {
	ToWebhook() WebhookData
}

// ------------------- Global config -------------------

var (
	defaultSlackWebhook string
	toastHub            *ws.Hub
)

// SetSlackWebhook sets the default Slack incoming webhook URL.
func SetSlackWebhook(url string) { defaultSlackWebhook = url }

// SetToastHub wires the WebSocket hub used by the "ws" channel.
// Call once at startup.
func SetToastHub(h *ws.Hub) { toastHub = h }

// ------------------- Send -------------------

// Send dispatches the notification through all channels returned by Via().
// recipient is the session ID of the storefront client, used to address the
// toast; Slack/webhook channels ignore it.
func Send(recipient string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(recipient, channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync dispatches the notification in a background goroutine.
// The caller gets no return contract; failures are only logged.
func SendAsync(recipient string, n Notification) {
	go func() {
		if errs := Send(recipient, n); len(errs) > 0 {
			for _, e := range errs {
				logger.Error("notification: async error", "error", e)
			}
		}
	}()
}

func dispatch(recipient, channel string, n Notification) error {
	switch channel {
	case "ws":
		t, ok := n.(Toastable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Toastable", n)
		}
		return sendToast(recipient, t.ToToast())

	case "slack":
		s, ok := n.(Slackable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Slackable", n)
		}
		return sendSlack(s.ToSlack())

	case "webhook":
		wh, ok := n.(Webhookable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Webhookable", n)
		}
		return sendWebhook(wh.ToWebhook())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

// ------------------- Browser push channel -------------------

type toastEnvelope struct {
	Session string    `json:"session,omitempty"`
	Toast   ToastData `json:"toast"`
}

func sendToast(recipient string, d ToastData) error {
	if toastHub == nil {
		return fmt.Errorf("notification: toast hub not configured")
	}

	raw, err := json.Marshal(toastEnvelope{Session: recipient, Toast: d})
	if err != nil {
		return fmt.Errorf("notification: toast marshal: %w", err)
	}

	toastHub.Broadcast <- raw
	return nil
}

// ------------------- Slack channel -------------------

type slackPayload struct {
	Text        string            `json:"text,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

func sendSlack(d SlackData) error {
	url := d.WebhookURL
	if url == "" {
		url = defaultSlackWebhook
	}
	if url == "" {
		return fmt.Errorf("notification: slack webhook URL not configured")
	}

	payload := slackPayload{
		Text:        d.Text,
		Attachments: d.Attachments,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notification: slack marshal: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("notification: slack post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification: slack returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// ------------------- Webhook channel -------------------

func sendWebhook(d WebhookData) error {
	if d.URL == "" {
		return fmt.Errorf("notification: webhook URL is empty")
	}

	raw, err := json.Marshal(d.Payload)
	if err != nil {
		return fmt.Errorf("notification: webhook marshal: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, d.URL, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("notification: webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("notification: webhook send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification: webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
