package services

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// PushService sends FCM notifications to registered device tokens. Delivery
// is best effort; a failed push never fails the operation that triggered it.
type PushService struct {
	client *messaging.Client
}

// NewPushService builds the FCM client from a service-account credentials
// file. Returns a nil-client service when credentials are absent, so callers
// can always call Notify.
func NewPushService(ctx context.Context, projectID, credentialsFile string) (*PushService, error) {
	if credentialsFile == "" {
		log.Println("[Push] No Firebase credentials configured, notifications disabled")
		return &PushService{}, nil
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID},
		option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, err
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}
	return &PushService{client: client}, nil
}

// Notify pushes the same notification to every token. Invalid tokens are
// reported by FCM per message and only logged.
func (s *PushService) Notify(ctx context.Context, tokens []string, title, body string, data map[string]string) {
	if s == nil || s.client == nil || len(tokens) == 0 {
		return
	}

	resp, err := s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		log.Printf("[Push] Multicast send failed: %v", err)
		return
	}
	if resp.FailureCount > 0 {
		log.Printf("[Push] Sent %d notifications, %d failed", resp.SuccessCount, resp.FailureCount)
	}
}
