package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

type WhatsAppSender struct {
	url    string
	token  string
	client *http.Client
}

func NewWhatsAppSender(url, token string, client *http.Client) *WhatsAppSender {
	return &WhatsAppSender{url: url, token: token, client: client}
}

type sendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (s *WhatsAppSender) Send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(sendRequest{Phone: phone, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedPayload))
		return fmt.Errorf("whatsapp gateway returned %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
