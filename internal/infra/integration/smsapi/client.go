// Package smsapi sends transactional SMS through an HTTP gateway.
package smsapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Client struct {
	apiKey     string
	sender     string
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		apiKey:  os.Getenv("SMS_API_KEY"),
		sender:  os.Getenv("SMS_SENDER_ID"),
		baseURL: envOr("SMS_API_URL", "https://api.smsgateway.example.com/v1"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendMessageRequest struct {
	To   string `json:"to"`
	From string `json:"from"`
	Body string `json:"body"`
}

// Send delivers one SMS. Misconfiguration is reported once and treated as a
// soft failure; booking confirmations must not depend on SMS being set up.
func (c *Client) Send(phone, body string) error {
	if c.apiKey == "" {
		log.Println("⚠️ SMS: SMS_API_KEY not configured, skipping send")
		return fmt.Errorf("sms gateway not configured")
	}

	payload, err := json.Marshal(sendMessageRequest{
		To:   phone,
		From: c.sender,
		Body: body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/messages", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
