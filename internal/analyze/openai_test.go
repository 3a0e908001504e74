// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func chatServer(t *testing.T, handler func(req chatRequest) (int, string)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		status, content := handler(req)
		w.WriteHeader(status)
		if status == http.StatusOK {
			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"content": content}},
				},
			})
		}
	}))
}

func TestCompleteJSON(t *testing.T) {
	var got chatRequest
	ts := chatServer(t, func(req chatRequest) (int, string) {
		got = req
		return http.StatusOK, `{"score": 8}`
	})
	defer ts.Close()

	c := &OpenAIClient{APIKey: "k", Model: "gpt-4o-mini", BaseURL: ts.URL, HTTP: ts.Client()}
	resp, err := c.CompleteJSON(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if resp != `{"score": 8}` {
		t.Errorf("resp = %q", resp)
	}
	if got.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", got.Model)
	}
	if got.Temperature != scoringTemperature {
		t.Errorf("temperature = %v, want %v", got.Temperature, scoringTemperature)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %+v, want json_object", got.ResponseFormat)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestCompleteProse(t *testing.T) {
	var got chatRequest
	ts := chatServer(t, func(req chatRequest) (int, string) {
		got = req
		return http.StatusOK, "a digest"
	})
	defer ts.Close()

	c := &OpenAIClient{APIKey: "k", Model: "m", BaseURL: ts.URL, HTTP: ts.Client()}
	resp, err := c.Complete(context.Background(), "", "user")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp != "a digest" {
		t.Errorf("resp = %q", resp)
	}
	if got.Temperature != briefingTemperature {
		t.Errorf("temperature = %v, want %v", got.Temperature, briefingTemperature)
	}
	if got.ResponseFormat != nil {
		t.Error("prose completion should not force JSON")
	}
	if len(got.Messages) != 1 {
		t.Errorf("empty system prompt should be omitted, messages = %+v", got.Messages)
	}
}

func TestCompleteAPIError(t *testing.T) {
	ts := chatServer(t, func(req chatRequest) (int, string) {
		return http.StatusUnauthorized, ""
	})
	defer ts.Close()

	c := &OpenAIClient{APIKey: "bad", Model: "m", BaseURL: ts.URL, HTTP: ts.Client()}
	if _, err := c.Complete(context.Background(), "", "user"); err == nil {
		t.Fatal("expected error on HTTP 401")
	}
}

func TestCompleteNoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer ts.Close()

	c := &OpenAIClient{APIKey: "k", Model: "m", BaseURL: ts.URL, HTTP: ts.Client()}
	if _, err := c.Complete(context.Background(), "", "user"); err == nil {
		t.Fatal("expected error on empty choices")
	}
}
