package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SMSSender delivers one-time codes through the SMS gateway.
type SMSSender struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
}

func NewSMSSender(endpoint, apiKey string) *SMSSender {
	return &SMSSender{
		APIKey:   strings.TrimSpace(apiKey),
		Endpoint: strings.TrimSpace(endpoint),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type smsSendRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (s *SMSSender) SendOTP(ctx context.Context, phoneNumber, code string) error {
	if s == nil || s.Endpoint == "" {
		return fmt.Errorf("sms sender not configured")
	}
	if s.APIKey == "" {
		return fmt.Errorf("missing SMS_API_KEY")
	}

	b, err := json.Marshal(smsSendRequest{
		To:      strings.TrimSpace(phoneNumber),
		Message: fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("sms send http %d", resp.StatusCode)
	}
	return nil
}
