package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID identifies tickets and inventory items. New IDs are the creation
// instant in Unix milliseconds, so two records created within the same
// millisecond share an ID.
type ID int64

// NewID derives an ID from the creation instant.
func NewID(now time.Time) ID {
	return ID(now.UnixMilli())
}

// ParseID parses the decimal form of an ID.
func ParseID(raw string) (ID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", raw, err)
	}
	return ID(v), nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Matches compares the decimal forms, so "1001" and 1001 name the same record.
func (id ID) Matches(raw string) bool {
	return id.String() == strings.TrimSpace(raw)
}

// UnmarshalJSON accepts both a JSON number and a numeric JSON string.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseID(s)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	if v, err := n.Int64(); err == nil {
		*id = ID(v)
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(int64(f))
	return nil
}
