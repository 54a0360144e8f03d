// Package notification fans one alert out over its channels. A notification
// names the channels it rides in Via() and implements the matching To*
// method per channel; "mail", "slack", and "webhook" ship here.
//
//	type LowStockNotification struct{ Product models.Product }
//	func (n *LowStockNotification) Via() []string { return []string{"mail", "slack"} }
package notification

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spectraretail/spectra-pos/pkg/http"
	"github.com/spectraretail/spectra-pos/pkg/logger"
	"github.com/spectraretail/spectra-pos/pkg/mail"
)

// MailData is the payload of the mail channel.
type MailData struct {
	To      string // overrides the recipient address if set
	Subject string
	Body    string // HTML
	Text    string
}

// SlackData is a Slack incoming-webhook message.
type SlackData struct {
	WebhookURL  string // overrides the default webhook if set
	Text        string
	Attachments []SlackAttachment
}

// SlackAttachment is one attachment block.
type SlackAttachment struct {
	Color  string `json:"color,omitempty"` // "good" | "warning" | "danger"
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Footer string `json:"footer,omitempty"`
}

// WebhookData is an arbitrary JSON POST.
type WebhookData struct {
	URL     string
	Payload interface{}
	Headers map[string]string
}

// Notification names the channels an alert should ride.
type Notification interface {
	Via() []string
}

// Mailable supports the mail channel.
type Mailable interface {
	ToMail() MailData
}

// Slackable supports the Slack channel.
type Slackable interface {
	ToSlack() SlackData
}

// Webhookable supports the webhook channel.
type Webhookable interface {
	ToWebhook() WebhookData
}

var defaultSlackWebhook string

// SetSlackWebhook configures the default incoming-webhook URL.
func SetSlackWebhook(url string) { defaultSlackWebhook = url }

// Send pushes n through every channel Via names. address is the recipient
// used by the mail channel.
func Send(address string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(address, channel, n); err != nil {
			logger.Error("notification channel failed", "channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync is Send on a background goroutine.
func SendAsync(address string, n Notification) {
	go Send(address, n) //nolint:errcheck
}

func dispatch(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(address, m.ToMail())

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

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}

	body := d.Body
	if body == "" {
		body = d.Text
	}

	return mail.To(to).Subject(d.Subject).Body(body).Send()
}

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

	raw, err := json.Marshal(slackPayload{Text: d.Text, Attachments: d.Attachments})
	if err != nil {
		return fmt.Errorf("notification: slack marshal: %w", err)
	}

	resp, err := http.Post(url).Body(raw).
		Header("Content-Type", "application/json").
		Timeout(5 * time.Second).
		Send()
	if err != nil {
		return fmt.Errorf("notification: slack post: %w", err)
	}
	return resp.Throw()
}

func sendWebhook(d WebhookData) error {
	if d.URL == "" {
		return fmt.Errorf("notification: webhook URL is empty")
	}

	req := http.Post(d.URL).Body(d.Payload).Timeout(10 * time.Second)
	for k, v := range d.Headers {
		req.Header(k, v)
	}

	resp, err := req.Send()
	if err != nil {
		return fmt.Errorf("notification: webhook send: %w", err)
	}
	return resp.Throw()
}
