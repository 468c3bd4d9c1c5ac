package domain

import (
	"bytes"
	"encoding/json"
	"errors"

	"go.trai.ch/zerr"
)

// MarshalTasks encodes a collection as the JSON array stored in a slot.
// A nil collection encodes as an empty array.
func MarshalTasks(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, zerr.Wrap(err, ErrSlotMarshalFailed.Error())
	}
	return data, nil
}

// UnmarshalTasks decodes a slot payload. Records are kept exactly as stored,
// including their order, duplicate ids and blank fields. Only a payload that is
// not a JSON array of task objects is malformed.
// A blank payload decodes as absent (found is false).
func UnmarshalTasks(data []byte) (tasks []Task, found bool, err error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, false, nil
	}

	var decoded []Task
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, false, errors.Join(ErrSlotMalformed, err)
	}

	if decoded == nil {
		decoded = []Task{}
	}
	return decoded, true, nil
}
