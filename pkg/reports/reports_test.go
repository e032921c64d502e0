package reports

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsforge/snowassets/pkg/snow"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", &ValidationError{msg: "limit must be >= 1"}, CodeValidation},
		{"auth", &snow.Error{Kind: snow.KindAuth}, CodeAuth},
		{"rate limit", &snow.Error{Kind: snow.KindRateLimit}, CodeRateLimit},
		{"not found", &snow.Error{Kind: snow.KindNotFound}, CodeNotFound},
		{"permission", &snow.Error{Kind: snow.KindPermission}, CodeQuery},
		{"connection", &snow.Error{Kind: snow.KindConnection}, CodeQuery},
		{"api", &snow.Error{Kind: snow.KindAPI}, CodeQuery},
		{"plain error", errors.New("boom"), CodeQuery},
		{"wrapped client error", fmt.Errorf("listing: %w", &snow.Error{Kind: snow.KindAuth}), CodeAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestFailureFrom(t *testing.T) {
	f := FailureFrom(&snow.Error{Kind: snow.KindRateLimit, Message: "rate-limited on table 'alm_asset'"})
	assert.Equal(t, "rate-limited on table 'alm_asset'", f.Error)
	assert.Equal(t, CodeRateLimit, f.ErrorCode)
}

func TestJoinQuery(t *testing.T) {
	assert.Equal(t, "", joinQuery())
	assert.Equal(t, "", joinQuery("", ""))
	assert.Equal(t, "a=1", joinQuery("a=1"))
	assert.Equal(t, "a=1^bLIKEtwo", joinQuery("a=1", "", "bLIKEtwo"))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 3.33, round2(10.0/3))
	assert.Equal(t, 3.3, round1(10.0/3))
	assert.Equal(t, 0.0, round2(0))
}

func TestDaysSince(t *testing.T) {
	today := time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)

	var f snow.Field
	require.NoError(t, f.UnmarshalJSON([]byte(`"2026-08-19 08:00:00"`)))
	got := daysSince(f, today)
	require.NotNil(t, got)
	assert.Equal(t, 10, *got)

	var empty snow.Field
	require.NoError(t, empty.UnmarshalJSON([]byte(`""`)))
	assert.Nil(t, daysSince(empty, today))
}
