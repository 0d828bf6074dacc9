package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mamadbah2/nutriwatch/internal/config"
)

func TestSendTextMessage(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	c := NewClient(config.WhatsAppConfig{BaseURL: srv.URL + "/", APIVersion: "v20.0", AccessToken: "tok", PhoneNumberID: "555"})

	resp, err := c.SendTextMessage(context.Background(), TextMessage{To: "224", Body: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].ID != "wamid.1" {
		t.Errorf("unexpected response %+v", resp)
	}
	if gotPath != "/v20.0/555/messages" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotBody["to"] != "224" || gotBody["type"] != "text" {
		t.Errorf("unexpected body %v", gotBody)
	}
}

func TestSendTextMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid parameter","code":100}}`))
	}))
	defer srv.Close()

	c := NewClient(config.WhatsAppConfig{BaseURL: srv.URL, APIVersion: "v20.0", AccessToken: "tok", PhoneNumberID: "555"})

	_, err := c.SendTextMessage(context.Background(), TextMessage{To: "224", Body: "hello"})
	if err == nil {
		t.Fatal("expected api error")
	}
	if !strings.Contains(err.Error(), "code=100") || !strings.Contains(err.Error(), "Invalid parameter") {
		t.Errorf("unexpected error %v", err)
	}
}
