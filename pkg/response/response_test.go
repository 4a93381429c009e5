package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse_JSON(t *testing.T) {
	data, err := json.Marshal(ShortCodeNotFoundResponse)

	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "Short code not found"}`, string(data))
}

func TestHealthResponse_JSON(t *testing.T) {
	t.Run("service payload omits message", func(t *testing.T) {
		data, err := json.Marshal(ServiceHealthyResponse)

		require.NoError(t, err)
		assert.JSONEq(t, `{"status": "healthy", "service": "URL Shortener API"}`, string(data))
	})

	t.Run("api payload omits service", func(t *testing.T) {
		data, err := json.Marshal(APIHealthyResponse)

		require.NoError(t, err)
		assert.JSONEq(t, `{"status": "ok", "message": "URL Shortener API is running"}`, string(data))
	})
}
