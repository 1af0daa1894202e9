package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCronAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(token string, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/cron", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		CronAuth(token)(next).ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token passes", func(t *testing.T) {
		rec := serve("s3cret", "Bearer s3cret")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		rec := serve("s3cret", "Bearer wrong")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		rec := serve("s3cret", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without bearer prefix is rejected", func(t *testing.T) {
		rec := serve("s3cret", "s3cret")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unconfigured endpoint is hidden", func(t *testing.T) {
		rec := serve("", "Bearer anything")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
