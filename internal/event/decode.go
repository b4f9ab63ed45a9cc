package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns e's payload as T. Events published in-process carry
// the struct itself; events read back from the event log or a dead-letter
// file carry decoded JSON and are converted through a JSON round trip.
func DecodePayload[T any](e Event) (T, error) {
	if v, ok := e.Payload.(T); ok {
		return v, nil
	}
	if v, ok := e.Payload.(*T); ok && v != nil {
		return *v, nil
	}

	var out T
	raw, ok := e.Payload.(json.RawMessage)
	if !ok {
		var err error
		if raw, err = json.Marshal(e.Payload); err != nil {
			return out, fmt.Errorf(ErrMsgDecodePayload+": %w", e.Type, err)
		}
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf(ErrMsgDecodePayload+": %w", e.Type, err)
	}
	return out, nil
}
