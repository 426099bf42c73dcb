package cookie

import (
	"encoding/json"
	"net/http"
	"strings"
)

// quotaExceededStatus is the detail.status value the API sends with a 401
// once the monthly quota of a key is used up.
const quotaExceededStatus = "quota_exceeded"

// notFoundTokens maps lower-cased substrings of a 404 message to the error
// kind they select. The API has no machine-readable code for these, only
// the message text. Order matters: user/member is checked before guild.
var notFoundTokens = []struct {
	token string
	kind  error
}{
	{"user", ErrUserNotFound},
	{"member", ErrUserNotFound},
	{"guild", ErrGuildNotFound},
}

// Response is a completed HTTP exchange with the body fully read.
type Response struct {
	StatusCode int
	URL        string
	Body       []byte
}

// Err classifies the response. It returns nil for a 200.
func (r *Response) Err() error {
	switch r.StatusCode {
	case http.StatusOK:
		return nil

	case http.StatusUnauthorized:
		env, ok := parseEnvelope(r.Body)
		if !ok {
			return newAPIError(ErrCookie, r, "")
		}
		if env.status == quotaExceededStatus {
			return newAPIError(ErrQuotaExceeded, r, env.message)
		}
		return newAPIError(ErrInvalidAPIKey, r, env.message)

	case http.StatusForbidden:
		return newAPIError(ErrNoGuildAccess, r, "")

	case http.StatusNotFound:
		env, ok := parseEnvelope(r.Body)
		if !ok {
			return newAPIError(ErrCookie, r, "")
		}
		return newAPIError(classifyNotFound(env.message), r, env.message)

	default:
		return newAPIError(ErrCookie, r, "")
	}
}

// Decode classifies the response and, on success, decodes the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := r.Err(); err != nil {
		return err
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return newAPIError(ErrCookie, r, "failed to decode response: "+err.Error())
	}
	return nil
}

// Bytes classifies the response and, on success, returns the body unmodified.
func (r *Response) Bytes() ([]byte, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	return r.Body, nil
}

// classifyNotFound picks the not-found kind from the message of a 404.
func classifyNotFound(message string) error {
	lower := strings.ToLower(message)
	for _, t := range notFoundTokens {
		if strings.Contains(lower, t.token) {
			return t.kind
		}
	}
	return ErrNotFound
}

// envelope holds the parts of an error body the interpreter cares about.
type envelope struct {
	status  string
	message string
}

// parseEnvelope reads an error body. The API sends one of
//
//	{"detail": {"status": "...", "message": "..."}}
//	{"detail": "..."}
//	{"message": "..."}
//
// ok is false only when the body is not JSON. Missing or mistyped keys
// leave the fields empty.
func parseEnvelope(body []byte) (env envelope, ok bool) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return envelope{}, false
	}

	obj, isObj := raw.(map[string]any)
	if !isObj {
		return envelope{}, true
	}

	switch detail := obj["detail"].(type) {
	case map[string]any:
		env.status, _ = detail["status"].(string)
		env.message, _ = detail["message"].(string)
	case string:
		env.message = detail
	}

	if env.message == "" {
		env.message, _ = obj["message"].(string)
	}

	return env, true
}
