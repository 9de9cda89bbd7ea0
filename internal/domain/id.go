package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TempIDPrefix marks ids assigned locally before the backend has answered.
const TempIDPrefix = "temp-"

// ID is an opaque backend identifier. The API sends ids either as JSON
// numbers or as strings; both decode into the same value.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == ""
}

func (id ID) IsTemporary() bool {
	return strings.HasPrefix(string(id), TempIDPrefix)
}

// NewTempID builds the placeholder id for an optimistic create.
func NewTempID(at time.Time) ID {
	return ID(TempIDPrefix + strconv.FormatInt(at.UnixMilli(), 10))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding id: %w", err)
	}
	*id = ID(n.String())
	return nil
}
