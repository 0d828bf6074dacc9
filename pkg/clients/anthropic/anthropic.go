package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/nutriwatch/internal/domain/models"
)

const (
	defaultURL = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 400
)

const systemPrompt = `You assist a child nutrition programme. You receive a JSON summary of
nutrition screening results for a reporting period. Write three to five plain sentences
for field coordinators: overall situation, the regions needing attention, and the
expected workload. Do not invent numbers that are not in the summary. No markdown.`

// Client is a resty-backed narrator for nutrition reports.
type Client struct {
	http *resty.Client
	url  string
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) *Client {
	rc := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{http: rc, url: defaultURL}
}

// WithURL points the client at another messages endpoint.
func (c *Client) WithURL(url string) *Client {
	c.url = url
	return c
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// reportDigest is the part of a report sent to the model.
type reportDigest struct {
	Type      models.ReportType        `json:"type"`
	Start     string                   `json:"period_start"`
	End       string                   `json:"period_end"`
	Stats     models.DashboardStats    `json:"stats"`
	AgeGroups []int                    `json:"age_group_counts"`
	Regions   []models.RegionBreakdown `json:"regions"`
}

// SummarizeReport asks the model for a short narrative of the report.
func (c *Client) SummarizeReport(ctx context.Context, report models.NutritionReport) (string, error) {
	digest, err := json.Marshal(reportDigest{
		Type:      report.Type,
		Start:     report.PeriodStart.Format(models.DateLayout),
		End:       report.PeriodEnd.Format(models.DateLayout),
		Stats:     report.Stats,
		AgeGroups: report.AgeGroups,
		Regions:   report.Regions,
	})
	if err != nil {
		return "", fmt.Errorf("encode report digest: %w", err)
	}

	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  []message{{Role: "user", Content: string(digest)}},
	}

	var respBody messageResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(c.url)
	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	return strings.TrimSpace(respBody.Content[0].Text), nil
}
