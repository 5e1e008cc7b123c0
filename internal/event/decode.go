package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns payload as T. Payloads published on the
// MemoryBus already have their concrete type; anything else (for example a
// map decoded from an SSE frame) is converted through JSON.
func DecodePayload[T any](payload any) (T, error) {
	if typed, ok := payload.(T); ok {
		return typed, nil
	}

	var out T
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("encode %T payload: %w", payload, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode payload as %T: %w", out, err)
	}
	return out, nil
}
