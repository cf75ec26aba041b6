package notifications

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

type Sender interface {
	Send(ctx context.Context, email Email) error
}

// GmailSender sends through the Gmail API as the authorised account. Sends
// are spaced at least interval apart to stay under the per-user quota.
type GmailSender struct {
	service  *gmail.Service
	from     string
	interval time.Duration

	sendMutex    sync.Mutex
	lastSendTime time.Time
}

// NewGmailSender builds the client from an OAuth client credentials file and
// a previously authorised token file.
func NewGmailSender(ctx context.Context, credentialsPath, tokenPath, from string, interval time.Duration) (*GmailSender, error) {
	credentials, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read gmail credentials: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(credentials, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	token, err := loadToken(tokenPath)
	if err != nil {
		return nil, err
	}

	service, err := gmail.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &GmailSender{
		service:  service,
		from:     from,
		interval: interval,
	}, nil
}

func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gmail token: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to decode gmail token: %w", err)
	}
	return &token, nil
}

func (s *GmailSender) Send(ctx context.Context, email Email) error {
	s.sendMutex.Lock()
	defer s.sendMutex.Unlock()

	if wait := s.interval - time.Since(s.lastSendTime); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	msg := &gmail.Message{Raw: encodeMessage(s.from, email)}
	_, err := s.service.Users.Messages.Send("me", msg).Context(ctx).Do()
	s.lastSendTime = time.Now()
	if err != nil {
		return fmt.Errorf("gmail send to %s: %w", email.To, err)
	}
	return nil
}

// encodeMessage builds an RFC 2822 plain-text message in the base64url form
// the Gmail API expects.
func encodeMessage(from string, email Email) string {
	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(email.Body)
	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}
