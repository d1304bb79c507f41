package whatsapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	path string
	rc   *resty.Client
}

type SendMessageRequest struct {
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	IsForwarded bool   `json:"is_forwarded"`
	Duration    int    `json:"duration"`
}

type SendMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"message_id"`
		Status    string `json:"status"`
	} `json:"data"`
}

func NewClient(baseURL, username, password, path string) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetBasicAuth(username, password).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second).
		SetRetryCount(2)
	return &Client{path: strings.Trim(path, "/"), rc: rc}
}

// Convert phone number from 08xxx to 628xxx format
func convertPhoneNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "08") {
		return "628" + phone[2:]
	}
	return strings.TrimPrefix(phone, "+")
}

// SendText delivers a plain text message to phone.
func (c *Client) SendText(ctx context.Context, phone, message string) (*SendMessageResponse, error) {
	var out SendMessageResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(SendMessageRequest{
			Phone:   convertPhoneNumber(phone) + "@s.whatsapp.net",
			Message: message,
		}).
		SetResult(&out).
		Post("/" + c.path + "/send/message")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("whatsapp gateway returned %s", resp.Status())
	}
	if !out.Success {
		return &out, fmt.Errorf("whatsapp gateway rejected message: %s", out.Message)
	}
	return &out, nil
}
