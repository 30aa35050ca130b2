package redis

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/povarna/generative-ai-agents/prompt-relay/internal/models"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/relay"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name       string
		values     map[string]any
		wantErr    bool
		wantPrompt *string
	}{
		{
			name:   "valid",
			values: map[string]any{"payload": `{"request_id":"r1","prompt":"Hello"}`},
		},
		{
			name:    "missing payload",
			values:  map[string]any{"other": "x"},
			wantErr: true,
		},
		{
			name:    "payload not a string",
			values:  map[string]any{"payload": 42},
			wantErr: true,
		},
		{
			name:    "invalid json",
			values:  map[string]any{"payload": `{"request_id":`},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := decodeEvent(tt.values)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if event.RequestID != "r1" || event.Prompt == nil || *event.Prompt != "Hello" {
				t.Errorf("Unexpected event %+v", event)
			}
		})
	}
}

func TestDecodeEvent_MissingPromptIsNil(t *testing.T) {
	event, err := decodeEvent(map[string]any{"payload": `{"request_id":"r2"}`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Prompt != nil {
		t.Errorf("Expected nil prompt, got %q", *event.Prompt)
	}
}

func TestBuildResult(t *testing.T) {
	event := models.RelayEvent{RequestID: "r1"}

	ok := buildResult(event, "Hi there", nil)
	if ok.Response != "Hi there" || ok.Failed() {
		t.Errorf("Unexpected success result %+v", ok)
	}

	invalid := buildResult(event, "", relay.ErrInvalidRequest)
	if invalid.Error != relay.ErrInvalidRequest.Error() {
		t.Errorf("Expected invalid request error, got %q", invalid.Error)
	}

	upstream := buildResult(event, "", errors.Join(relay.ErrUpstreamFailure, errors.New("secret detail")))
	if upstream.Error != relay.ErrUpstreamFailure.Error() {
		t.Errorf("Expected generic upstream error, got %q", upstream.Error)
	}
}

func TestEncodeResult(t *testing.T) {
	values, err := encodeResult(models.RelayResult{RequestID: "r1", Response: "Hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["request_id"] != "r1" {
		t.Errorf("Expected request_id r1, got %v", values["request_id"])
	}

	var decoded models.RelayResult
	if err := json.Unmarshal([]byte(values["payload"].(string)), &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded.Response != "Hi" {
		t.Errorf("Expected response 'Hi', got %q", decoded.Response)
	}
}

func TestBuildResult_EmptyAnswerIsSuccess(t *testing.T) {
	result := buildResult(models.RelayEvent{RequestID: "r3"}, "", nil)
	if result.Failed() {
		t.Errorf("Expected success, got %+v", result)
	}

	values, err := encodeResult(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(values["payload"].(string)), &raw); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if _, ok := raw["response"]; !ok {
		t.Errorf("Expected response key in payload %v", raw)
	}
}
