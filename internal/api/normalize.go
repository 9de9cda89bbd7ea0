package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"

	apperrors "campusmart/internal/errors"
)

// Keys under which the backend nests its error payload. Responses have been
// seen flat, under "error", under "data", and under "response.data".
var envelopeKeys = []string{"response", "error", "data"}

var messageKeys = []string{"message", "error", "detail", "msg"}

var fieldErrorKeys = []string{"errors", "field_errors", "fields", "detail"}

func normalizeResponse(status int, body []byte) *apperrors.NormalizedError {
	ne := &apperrors.NormalizedError{Status: status}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		text := strings.TrimSpace(string(body))
		if text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
			ne.Message = text
		}
		return ne
	}

	layers := unwrapEnvelopes(raw)

	// Innermost layer wins for every attribute.
	for i := len(layers) - 1; i >= 0; i-- {
		if ne.Message == "" {
			ne.Message = firstString(layers[i], messageKeys...)
		}
		if len(ne.FieldErrors) == 0 {
			ne.FieldErrors = fieldErrors(layers[i])
		}
		if flag, ok := layers[i]["requires_verification"].(bool); ok && flag {
			ne.RequiresVerification = true
		}
	}
	return ne
}

// unwrapEnvelopes returns raw followed by each nested error object found
// under one of the envelope keys.
func unwrapEnvelopes(raw map[string]any) []map[string]any {
	layers := []map[string]any{raw}
	current := raw
	for depth := 0; depth < 4; depth++ {
		next, ok := nestedObject(current)
		if !ok {
			break
		}
		layers = append(layers, next)
		current = next
	}
	return layers
}

func nestedObject(m map[string]any) (map[string]any, bool) {
	for _, key := range envelopeKeys {
		if nested, ok := m[key].(map[string]any); ok {
			return nested, true
		}
	}
	return nil, false
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// fieldErrors reads a field → message mapping in any of the shapes the
// backend uses: {"name": "required"}, {"name": ["required", ...]} or
// [{"field": "name", "message": "required"}].
func fieldErrors(m map[string]any) []apperrors.ValidationDetail {
	for _, key := range fieldErrorKeys {
		switch v := m[key].(type) {
		case map[string]any:
			if details := fieldErrorsFromMap(v); len(details) > 0 {
				return details
			}
		case []any:
			if details := fieldErrorsFromList(v); len(details) > 0 {
				return details
			}
		}
	}
	return nil
}

func fieldErrorsFromMap(m map[string]any) []apperrors.ValidationDetail {
	fields := make([]string, 0, len(m))
	for field := range m {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var details []apperrors.ValidationDetail
	for _, field := range fields {
		switch v := m[field].(type) {
		case string:
			details = append(details, apperrors.ValidationDetail{Field: field, Message: v})
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					details = append(details, apperrors.ValidationDetail{Field: field, Message: s})
				}
			}
		}
	}
	return details
}

func fieldErrorsFromList(items []any) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		field := firstString(obj, "field", "param", "name")
		if field == "" {
			field = lastLocation(obj["loc"])
		}
		msg := firstString(obj, "message", "msg", "error")
		if field == "" || msg == "" {
			continue
		}
		details = append(details, apperrors.ValidationDetail{Field: field, Message: msg})
	}
	return details
}

func lastLocation(v any) string {
	loc, ok := v.([]any)
	if !ok || len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s
	}
	return ""
}

// normalizeTransport maps a failure that never produced an HTTP response.
// Status 0 keeps it retryable; cancellation stays visible through Unwrap.
func normalizeTransport(err error) *apperrors.NormalizedError {
	ne := &apperrors.NormalizedError{Cause: err}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		ne.Timeout = true
	}
	return ne
}

func normalizeDecode(status int, err error) error {
	return apperrors.NewInternalError(fmt.Sprintf("decoding %d response", status), err)
}
