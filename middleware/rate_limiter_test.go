package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T, remoteAddr string, headers map[string]string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			"forwarded-for takes the first hop",
			"10.0.0.1:1234",
			map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			"203.0.113.7",
		},
		{
			"forwarded-for is trimmed",
			"10.0.0.1:1234",
			map[string]string{"X-Forwarded-For": " 203.0.113.7 "},
			"203.0.113.7",
		},
		{
			"real-ip when no forwarded-for",
			"10.0.0.1:1234",
			map[string]string{"X-Real-IP": "203.0.113.9"},
			"203.0.113.9",
		},
		{
			"remote address without its port",
			"192.0.2.4:5678",
			nil,
			"192.0.2.4",
		},
		{
			"remote address without any port",
			"192.0.2.4",
			nil,
			"192.0.2.4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, tt.remoteAddr, tt.headers)
			if got := clientIP(c); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
