package redis

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/povarna/generative-ai-agents/prompt-relay/internal/models"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/relay"
)

const payloadField = "payload"

var errMissingPayload = errors.New("missing payload field")

func decodeEvent(values map[string]any) (models.RelayEvent, error) {
	var event models.RelayEvent

	payload, ok := values[payloadField].(string)
	if !ok {
		return event, errMissingPayload
	}

	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return event, fmt.Errorf("decode payload: %w", err)
	}

	return event, nil
}

// buildResult maps relay errors onto the generic error strings callers see.
func buildResult(event models.RelayEvent, answer string, err error) models.RelayResult {
	result := models.RelayResult{RequestID: event.RequestID}

	switch {
	case err == nil:
		result.Response = answer
	case errors.Is(err, relay.ErrInvalidRequest):
		result.Error = relay.ErrInvalidRequest.Error()
	default:
		result.Error = relay.ErrUpstreamFailure.Error()
	}

	return result
}

func encodeResult(result models.RelayResult) (map[string]any, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"request_id": result.RequestID,
		payloadField: string(data),
	}, nil
}
