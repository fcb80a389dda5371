package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// StreamIndex is a subtitle ordinal that accepts a JSON number or a numeric
// string. Values that are not integers leave it unset instead of failing the
// request.
type StreamIndex struct {
	value int
	set   bool
}

// NewStreamIndex returns a set index.
func NewStreamIndex(v int) StreamIndex {
	return StreamIndex{value: v, set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *StreamIndex) UnmarshalJSON(data []byte) error {
	*s = StreamIndex{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(data)
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	*s = NewStreamIndex(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s StreamIndex) MarshalJSON() ([]byte, error) {
	if !s.set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(s.value)), nil
}

// Ptr returns the index or nil when unset.
func (s StreamIndex) Ptr() *int {
	if !s.set {
		return nil
	}
	v := s.value
	return &v
}
