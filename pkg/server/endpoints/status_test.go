package endpoints

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		env := newTestEnv(t)

		env.health.On("CheckConnectivity").Return(nil)

		rec := env.do(t, "GET", "/status", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[StatusResponse](t, rec)
		assert.Equal(t, "ok", body.Status)
		assert.NotEmpty(t, body.Version)
	})

	t.Run("database unreachable", func(t *testing.T) {
		env := newTestEnv(t)

		env.health.On("CheckConnectivity").Return(errors.New("connection refused"))

		rec := env.do(t, "GET", "/status", "", nil)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		body := decodeBody[StatusResponse](t, rec)
		assert.Equal(t, "error", body.Status)
	})
}
