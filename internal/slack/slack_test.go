package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func captureServer(t *testing.T, status int, received *map[string]any, mu *sync.Mutex) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		_ = json.Unmarshal(body, received)
		mu.Unlock()
		w.WriteHeader(status)
	}))
}

func TestVideoPublished_PostsCorrectPayload(t *testing.T) {
	var mu sync.Mutex
	var receivedBody map[string]any
	server := captureServer(t, http.StatusOK, &receivedBody, &mu)
	defer server.Close()

	client := New(server.URL)
	err := client.VideoPublished(context.Background(), "Demo Video", "https://streamhub.example.com/watch/abc123")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	mu.Lock()
	defer mu.Unlock()

	if receivedBody == nil {
		t.Fatal("expected HTTP request to Slack webhook, got none")
	}

	blocks, ok := receivedBody["blocks"].([]any)
	if !ok || len(blocks) < 2 {
		t.Fatalf("expected at least 2 blocks, got %v", receivedBody)
	}

	section := blocks[0].(map[string]any)
	if section["type"] != "section" {
		t.Errorf("expected first block type 'section', got %v", section["type"])
	}
	text := section["text"].(map[string]any)
	if text["type"] != "mrkdwn" {
		t.Errorf("expected mrkdwn type, got %v", text["type"])
	}
	mrkdwn := text["text"].(string)
	if mrkdwn != ":clapper: *New video published*\n<https://streamhub.example.com/watch/abc123|Demo Video>" {
		t.Errorf("unexpected publish text: %q", mrkdwn)
	}

	contextBlock := blocks[1].(map[string]any)
	if contextBlock["type"] != "context" {
		t.Errorf("expected second block type 'context', got %v", contextBlock["type"])
	}
	elements := contextBlock["elements"].([]any)
	elem := elements[0].(map[string]any)
	if elem["text"] != "Published on StreamHub" {
		t.Errorf("unexpected context text: %v", elem["text"])
	}
}

func TestVideoDeleted_PostsCorrectPayload(t *testing.T) {
	var mu sync.Mutex
	var receivedBody map[string]any
	server := captureServer(t, http.StatusOK, &receivedBody, &mu)
	defer server.Close()

	client := New(server.URL)
	err := client.VideoDeleted(context.Background(), "Old Video")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	mu.Lock()
	defer mu.Unlock()

	if receivedBody == nil {
		t.Fatal("expected HTTP request to Slack webhook, got none")
	}

	blocks, ok := receivedBody["blocks"].([]any)
	if !ok || len(blocks) < 1 {
		t.Fatalf("expected at least 1 block, got %v", receivedBody)
	}

	section := blocks[0].(map[string]any)
	text := section["text"].(map[string]any)
	mrkdwn := text["text"].(string)
	if mrkdwn != ":wastebasket: *Video removed*\nOld Video" {
		t.Errorf("unexpected delete text: %q", mrkdwn)
	}
}

func TestVideoPublished_SlackError_ReturnsNil(t *testing.T) {
	var mu sync.Mutex
	var receivedBody map[string]any
	server := captureServer(t, http.StatusInternalServerError, &receivedBody, &mu)
	defer server.Close()

	client := New(server.URL)
	err := client.VideoPublished(context.Background(), "My Video", "https://streamhub.example.com/watch/abc")
	if err != nil {
		t.Fatalf("expected nil error on Slack failure, got %v", err)
	}
}

func TestVideoDeleted_ConnectionError_ReturnsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	unreachableURL := server.URL
	server.Close()

	client := New(unreachableURL)
	err := client.VideoDeleted(context.Background(), "My Video")
	if err != nil {
		t.Fatalf("expected nil error on connection failure, got %v", err)
	}
}
