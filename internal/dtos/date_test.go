package dtos

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_AcceptsBothLayouts(t *testing.T) {
	want := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{`"2025-01-08"`, `"2025-01-08T15:30:00Z"`, `" 2025-01-08 "`} {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(raw), &d), raw)
		assert.True(t, want.Equal(d.Time), raw)
	}
}

func TestDate_RejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"08/01/2025"`), &d))
}

func TestDate_MarshalsAsDateOnly(t *testing.T) {
	b, err := json.Marshal(NewDate(time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC)))

	require.NoError(t, err)
	assert.Equal(t, `"2025-03-31"`, string(b))
}
