package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supersub/supersub/pkg/clientip"
)

func TestResolver_IP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		resolver   *clientip.Resolver
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"cloudflare first", clientip.New(), map[string]string{
			"CF-Connecting-IP": "203.0.113.195", "X-Forwarded-For": "192.168.1.1",
		}, "172.16.0.1:1234", "203.0.113.195"},
		{"left-most valid forwarded entry", clientip.New(), map[string]string{
			"X-Forwarded-For": "garbage, 198.51.100.7, 10.0.0.1",
		}, "172.16.0.1:1234", "198.51.100.7"},
		{"invalid headers fall back to remote addr", clientip.New(), map[string]string{
			"X-Real-IP": "not-an-ip",
		}, "192.0.2.10:443", "192.0.2.10"},
		{"ipv6 remote addr", clientip.New(), nil, "[2001:db8::1]:8080", "2001:db8::1"},
		{"ipv4-mapped ipv6 is unmapped", clientip.New(), map[string]string{
			"X-Real-IP": "::ffff:192.0.2.1",
		}, "", "192.0.2.1"},
		{"without proxy ignores headers", clientip.WithoutProxy(), map[string]string{
			"X-Forwarded-For": "203.0.113.1",
		}, "192.0.2.10:443", "192.0.2.10"},
		{"custom header order", clientip.New("X-Real-IP"), map[string]string{
			"CF-Connecting-IP": "203.0.113.195", "X-Real-IP": "198.51.100.2",
		}, "192.0.2.10:443", "198.51.100.2"},
		{"nothing valid", clientip.WithoutProxy(), nil, "unix-socket", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, tt.resolver.IP(r))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.New().Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = clientip.GetIPFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "203.0.113.9", got)

	_, ok := clientip.LoggerExtractor()(r.Context())
	assert.False(t, ok)
}
