package cookie

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseErr(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		message string
	}{
		{
			name:   "ok",
			status: 200,
			body:   `{}`,
			want:   nil,
		},
		{
			name:    "unauthorized",
			status:  401,
			body:    `{"detail": {"status": "invalid_key", "message": "Invalid API key."}}`,
			want:    ErrInvalidAPIKey,
			message: "Invalid API key.",
		},
		{
			name:    "quota exceeded",
			status:  401,
			body:    `{"detail": {"status": "quota_exceeded", "message": "Monthly quota exceeded."}}`,
			want:    ErrQuotaExceeded,
			message: "Monthly quota exceeded.",
		},
		{
			name:   "unauthorized without JSON body",
			status: 401,
			body:   `<html>bad gateway</html>`,
			want:   ErrCookie,
		},
		{
			name:   "unauthorized with flat detail",
			status: 401,
			body:    `{"detail": "quota_exceeded"}`,
			want:    ErrInvalidAPIKey,
			message: "quota_exceeded",
		},
		{
			name:   "forbidden",
			status: 403,
			body:   `{"detail": "User not found"}`,
			want:   ErrNoGuildAccess,
		},
		{
			name:   "forbidden without JSON body",
			status: 403,
			body:   `<html>forbidden</html>`,
			want:   ErrNoGuildAccess,
		},
		{
			name:    "user not found nested message",
			status:  404,
			body:    `{"detail": {"status": "not_found", "message": "User not found"}}`,
			want:    ErrUserNotFound,
			message: "User not found",
		},
		{
			name:    "user not found flat detail",
			status:  404,
			body:    `{"detail": "USER NOT FOUND"}`,
			want:    ErrUserNotFound,
			message: "USER NOT FOUND",
		},
		{
			name:    "member not found",
			status:  404,
			body:    `{"detail": "Member does not exist"}`,
			want:    ErrUserNotFound,
			message: "Member does not exist",
		},
		{
			name:    "guild not found",
			status:  404,
			body:    `{"detail": "Guild not found"}`,
			want:    ErrGuildNotFound,
			message: "Guild not found",
		},
		{
			name:    "user token wins over guild token",
			status:  404,
			body:    `{"detail": "Guild has no such User"}`,
			want:    ErrUserNotFound,
			message: "Guild has no such User",
		},
		{
			name:    "member token wins over guild token",
			status:  404,
			body:    `{"detail": {"message": "guild member missing"}}`,
			want:    ErrUserNotFound,
			message: "guild member missing",
		},
		{
			name:    "top level message",
			status:  404,
			body:    `{"message": "guild is gone"}`,
			want:    ErrGuildNotFound,
			message: "guild is gone",
		},
		{
			name:    "generic not found",
			status:  404,
			body:    `{"detail": "Nothing here"}`,
			want:    ErrNotFound,
			message: "Nothing here",
		},
		{
			name:   "not found without message",
			status: 404,
			body:   `{"detail": 42}`,
			want:   ErrNotFound,
		},
		{
			name:   "not found with array body",
			status: 404,
			body:   `["user"]`,
			want:   ErrNotFound,
		},
		{
			name:   "not found without JSON body",
			status: 404,
			body:   `Not Found`,
			want:   ErrCookie,
		},
		{
			name:   "server error",
			status: 500,
			body:   `Internal Server Error`,
			want:   ErrCookie,
		},
		{
			name:   "unprocessable entity",
			status: 422,
			body:   `{"detail": [{"msg": "value is not a valid integer"}]}`,
			want:   ErrCookie,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{StatusCode: tt.status, URL: "https://api.cookieapp.me/v1/stats/user/1", Body: []byte(tt.body)}
			err := resp.Err()

			if tt.want == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrCookie)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, resp.URL, apiErr.URL)
			assert.Equal(t, tt.body, apiErr.Body)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Same(t, tt.want, apiErr.Unwrap())
		})
	}
}

func TestErrorHierarchy(t *testing.T) {
	assert.ErrorIs(t, ErrQuotaExceeded, ErrInvalidAPIKey)
	assert.ErrorIs(t, ErrUserNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrGuildNotFound, ErrNotFound)

	assert.NotErrorIs(t, ErrInvalidAPIKey, ErrQuotaExceeded)
	assert.NotErrorIs(t, ErrUserNotFound, ErrGuildNotFound)
	assert.NotErrorIs(t, ErrNoGuildAccess, ErrInvalidAPIKey)
	assert.NotErrorIs(t, ErrNotFound, ErrUserNotFound)

	for _, err := range []error{ErrInvalidAPIKey, ErrQuotaExceeded, ErrNoGuildAccess, ErrNotFound, ErrUserNotFound, ErrGuildNotFound} {
		assert.ErrorIs(t, err, ErrCookie)
	}
}

func TestClassifyNotFound(t *testing.T) {
	tests := []struct {
		message string
		want    error
	}{
		{"user", ErrUserNotFound},
		{"Unknown User", ErrUserNotFound},
		{"MEMBER", ErrUserNotFound},
		{"guild member", ErrUserNotFound},
		{"guild user", ErrUserNotFound},
		{"Guild", ErrGuildNotFound},
		{"", ErrNotFound},
		{"channel not found", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Same(t, tt.want, classifyNotFound(tt.message))
		})
	}
}

func TestResponseDecode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		resp := &Response{StatusCode: 200, Body: []byte(`{"user_id": 203208036053942272, "cookies": 12, "job": "baker"}`)}

		var stats UserStats
		require.NoError(t, resp.Decode(&stats))
		assert.Equal(t, int64(203208036053942272), stats.UserID)
		assert.Equal(t, int64(12), stats.Cookies)
		assert.Equal(t, "baker", stats.Job)
		assert.Zero(t, stats.Streak)
	})

	t.Run("invalid JSON on success", func(t *testing.T) {
		resp := &Response{StatusCode: 200, URL: "u", Body: []byte(`not json`)}

		var stats UserStats
		err := resp.Decode(&stats)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCookie)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "status 200")
	})

	t.Run("error status skips decoding", func(t *testing.T) {
		resp := &Response{StatusCode: 403, Body: []byte(`{"user_id": 1}`)}

		var stats UserStats
		err := resp.Decode(&stats)
		assert.ErrorIs(t, err, ErrNoGuildAccess)
		assert.Zero(t, stats.UserID)
	})
}

func TestResponseBytes(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00}

	b, err := (&Response{StatusCode: 200, Body: png}).Bytes()
	require.NoError(t, err)
	assert.Equal(t, png, b)

	_, err = (&Response{StatusCode: 404, Body: []byte(`{"detail": "Guild not found"}`)}).Bytes()
	assert.ErrorIs(t, err, ErrGuildNotFound)
}

func TestResponseErrNonJSONUnauthorized(t *testing.T) {
	resp := &Response{StatusCode: 401, URL: "https://api.cookieapp.me/v1/stats/user/1", Body: []byte("<html>bad gateway</html>")}
	err := resp.Err()

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidAPIKey)
	assert.NotErrorIs(t, err, ErrQuotaExceeded)
	assert.ErrorIs(t, err, ErrCookie)
	assert.Contains(t, err.Error(), "<html>bad gateway</html>")
}

func TestAPIError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &APIError{StatusCode: 404, Message: "User not found", kind: ErrUserNotFound}
		assert.Equal(t, "cookie API error: status 404: User not found", err.Error())

		err = &APIError{StatusCode: 403, kind: ErrNoGuildAccess}
		assert.Equal(t, "cookie API error: status 403: you are not a member of this guild", err.Error())

		err = &APIError{StatusCode: 502, URL: "https://api.cookieapp.me/v1/stats/user/1", Body: "Bad Gateway", kind: ErrCookie}
		assert.Equal(t, "cookie API error: status 502 for https://api.cookieapp.me/v1/stats/user/1: Bad Gateway", err.Error())
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := &APIError{StatusCode: 404, kind: ErrNotFound}
		assert.True(t, err.IsNotFound())

		err.StatusCode = 500
		assert.False(t, err.IsNotFound())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code, kind: ErrCookie}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
		}
	})
}
