package middleware

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/slack-go/slack"

	"starboard/core/log"
)

const (
	defaultAlertCooldown = 10 * time.Minute
	alertSendTimeout     = 10 * time.Second
)

type SlackAlertConfig struct {
	WebhookURL  string
	Environment string
	AppName     string
	LogsURL     string
}

// ErrorAlertMiddleware recovers panics in event and HTTP handlers and reports failures
// to a Slack incoming webhook. Identical errors are reported at most once per cooldown.
type ErrorAlertMiddleware struct {
	config        SlackAlertConfig
	httpClient    *http.Client
	alertedErrors map[string]time.Time // hash -> last alert time
	mutex         sync.Mutex
	alertCooldown time.Duration
	inFlight      sync.WaitGroup
}

func NewErrorAlertMiddleware(config SlackAlertConfig) *ErrorAlertMiddleware {
	return &ErrorAlertMiddleware{
		config:        config,
		httpClient:    &http.Client{Timeout: alertSendTimeout},
		alertedErrors: make(map[string]time.Time),
		alertCooldown: defaultAlertCooldown,
	}
}

// HTTPMiddleware wraps HTTP handlers, suitable for mux.Router.Use
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer m.recoverAndAlert(fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

// WrapEventHandler turns a fallible gateway event handler into one that never panics.
// Returned errors are logged and alerted.
func (m *ErrorAlertMiddleware) WrapEventHandler(
	eventName string,
	handler func(ctx context.Context) error,
) func(ctx context.Context) {
	return func(ctx context.Context) {
		defer m.recoverAndAlert(fmt.Sprintf("Discord event: %s", eventName))

		if err := handler(ctx); err != nil {
			log.Error("❌ Discord event handler failed", "event", eventName, "error", err)
			m.alertOnError(err, fmt.Sprintf("Discord event: %s", eventName))
		}
	}
}

// Flush waits for alerts that are still being delivered
func (m *ErrorAlertMiddleware) Flush() {
	m.inFlight.Wait()
}

func (m *ErrorAlertMiddleware) alertOnError(err error, alertContext string) {
	errorMsg := fmt.Sprintf("%s: %v", alertContext, err)
	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := time.Now()
	m.pruneExpiredAlerts(now)
	if lastAlert, exists := m.alertedErrors[hash]; exists && now.Sub(lastAlert) < m.alertCooldown {
		return
	}
	m.alertedErrors[hash] = now
	m.sendAsync(errorMsg, alertContext)
}

// pruneExpiredAlerts drops hashes whose cooldown has passed. Caller must hold m.mutex.
func (m *ErrorAlertMiddleware) pruneExpiredAlerts(now time.Time) {
	for hash, lastAlert := range m.alertedErrors {
		if now.Sub(lastAlert) >= m.alertCooldown {
			delete(m.alertedErrors, hash)
		}
	}
}

func (m *ErrorAlertMiddleware) recoverAndAlert(alertContext string) {
	if r := recover(); r != nil {
		errorMsg := fmt.Sprintf("%s: PANIC - %v", alertContext, r)
		log.Error("❌ Recovered from panic", "context", alertContext, "panic", r)
		m.sendAsync(errorMsg, alertContext+" (PANIC)")
	}
}

func (m *ErrorAlertMiddleware) sendAsync(errorMsg, alertContext string) {
	if m.config.WebhookURL == "" {
		return
	}

	m.inFlight.Add(1)
	go func() {
		defer m.inFlight.Done()
		m.sendSlackAlert(errorMsg, alertContext)
	}()
}

func (m *ErrorAlertMiddleware) sendSlackAlert(errorMsg, alertContext string) {
	ctx, cancel := context.WithTimeout(context.Background(), alertSendTimeout)
	defer cancel()

	if err := slack.PostWebhookCustomHTTPContext(ctx, m.config.WebhookURL, m.httpClient, m.buildAlertMessage(errorMsg, alertContext)); err != nil {
		log.Error("❌ Failed to send Slack alert", "error", err)
	}
}

func (m *ErrorAlertMiddleware) buildAlertMessage(errorMsg, alertContext string) *slack.WebhookMessage {
	envPrefix := ""
	if m.config.Environment == "dev" {
		envPrefix = "[dev] "
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(
			slack.PlainTextType,
			fmt.Sprintf("🚨 %s[%s] Error Alert", envPrefix, m.config.AppName),
			true,
			false,
		)),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Service:* %s", m.config.AppName), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Environment:* %s", m.config.Environment), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Context:* %s", alertContext), false, false),
		}, nil),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Error:*\n```%s```", errorMsg), false, false),
			nil,
			nil,
		),
	}
	if m.config.LogsURL != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("🔗 <%s|View Logs>", m.config.LogsURL), false, false),
			nil,
			nil,
		))
	}

	return &slack.WebhookMessage{
		Text:   errorMsg,
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
}
