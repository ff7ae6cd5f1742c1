package worldbank

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// PageMeta is element 0 of a successful response
type PageMeta struct {
	Page        flexInt `json:"page"`
	Pages       flexInt `json:"pages"`
	PerPage     flexInt `json:"per_page"`
	Total       flexInt `json:"total"`
	SourceID    string  `json:"sourceid"`
	LastUpdated string  `json:"lastupdated"`
}

// Ref is the {id, value} pair the API uses for countries and indicators
type Ref struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Record is one observation in element 1 of a successful response. Only the
// fields the loader reads are declared; date and value stay raw so their
// shape is judged per record
type Record struct {
	Country Ref             `json:"country"`
	Date    json.RawMessage `json:"date"`
	Value   json.RawMessage `json:"value"`
}

// APIMessage is one entry of the error payload the API returns in place of
// page metadata, e.g. for an unknown indicator
type APIMessage struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type apiError struct {
	Message []APIMessage `json:"message"`
}

// flexInt accepts both 500 and "500"; the API is not consistent across versions
type flexInt int

// UnmarshalJSON implements json.Unmarshaler
func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		*f = flexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// Rate returns the record value as a float, or nil when it is null, missing
// or not numeric. Numeric strings are accepted
func (r Record) Rate() *float64 {
	raw := bytes.TrimSpace(r.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return &v
		}
	}
	return nil
}

// Year parses the record date, sent as "2018" (or occasionally 2018).
// ok is false for anything that is not a plain year
func (r Record) Year() (int, bool) {
	raw := bytes.TrimSpace(r.Date)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`""`)) {
		return 0, false
	}
	var f flexInt
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return int(f), true
}
