package whatsapp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/nutriwatch/internal/config"
)

// Client sends text messages through the WhatsApp Cloud API.
type Client interface {
	SendTextMessage(ctx context.Context, req TextMessage) (*SendResponse, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	http          *resty.Client
	phoneNumberID string
}

// NewClient builds a WhatsApp API client using the provided configuration values.
func NewClient(cfg config.WhatsAppConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	rc := resty.New().
		SetBaseURL(fmt.Sprintf("%s/%s", base, cfg.APIVersion)).
		SetAuthToken(cfg.AccessToken).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{http: rc, phoneNumberID: cfg.PhoneNumberID}
}

// TextMessage is an outbound plain text message.
type TextMessage struct {
	To         string
	Body       string
	PreviewURL bool
}

// SendResponse mirrors the successful response from Meta.
type SendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type apiError struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

// SendTextMessage posts a text message to the configured phone number.
func (c *APIClient) SendTextMessage(ctx context.Context, msg TextMessage) (*SendResponse, error) {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                msg.To,
		"type":              "text",
		"text": map[string]any{
			"body":        msg.Body,
			"preview_url": msg.PreviewURL,
		},
	}

	result := new(SendResponse)
	failure := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(failure).
		Post(c.phoneNumberID + "/messages")
	if err != nil {
		return nil, fmt.Errorf("send whatsapp message: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		code := resp.StatusCode()
		if failure.Error.Code != 0 {
			code = failure.Error.Code
		}
		return nil, fmt.Errorf("whatsapp api error: code=%d, message=%s", code, failure.Error.Message)
	}

	return result, nil
}
