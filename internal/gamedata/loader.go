package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// validator is implemented by catalog files that can check their own contents.
type validator interface {
	validate() error
}

// Load reads, strictly decodes and validates a JSON file from the embedded
// filesystem. Unknown fields are rejected so a typo in a catalog fails loudly.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read embedded file %s: %w", filename, err)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("parse %s: %w", filename, err)
	}

	if v, ok := any(&result).(validator); ok {
		if err := v.validate(); err != nil {
			return result, fmt.Errorf("validate %s: %w", filename, err)
		}
	}
	return result, nil
}
