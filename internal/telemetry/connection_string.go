package telemetry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingInstrumentationKey is returned for a connection string without an
// InstrumentationKey segment.
var ErrMissingInstrumentationKey = errors.New("connection string has no InstrumentationKey")

// ConnectionString is a parsed Application Insights connection string.
type ConnectionString struct {
	InstrumentationKey string
	IngestionEndpoint  string
	LiveEndpoint       string
}

// ParseConnectionString reads a "Key=Value;Key=Value" connection string.
// Keys are case-insensitive and unknown keys are ignored.
func ParseConnectionString(s string) (ConnectionString, error) {
	var conn ConnectionString
	for _, segment := range strings.Split(s, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		key, value, ok := strings.Cut(segment, "=")
		if !ok {
			return ConnectionString{}, fmt.Errorf("invalid connection string segment %q", segment)
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "instrumentationkey":
			conn.InstrumentationKey = value
		case "ingestionendpoint":
			conn.IngestionEndpoint = strings.TrimRight(value, "/")
		case "liveendpoint":
			conn.LiveEndpoint = strings.TrimRight(value, "/")
		}
	}
	if conn.InstrumentationKey == "" {
		return ConnectionString{}, ErrMissingInstrumentationKey
	}
	return conn, nil
}

// RedactedKey returns the first eight characters of the instrumentation key.
func (c ConnectionString) RedactedKey() string {
	const keep = 8
	if len(c.InstrumentationKey) <= keep {
		return c.InstrumentationKey
	}
	return c.InstrumentationKey[:keep] + "***"
}
