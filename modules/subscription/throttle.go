package subscription

import (
	"net/http"
	"strconv"

	"github.com/supersub/supersub/pkg/ratelimiter"
	"github.com/supersub/supersub/pkg/subscription"
)

// ThrottleKey keys rate limiting by authenticated user, falling back to the
// client IP for anonymous requests.
func ThrottleKey(r *http.Request) string {
	if id, ok := subscription.GetUserIDFromContext(r.Context()); ok {
		return "user:" + strconv.FormatInt(int64(id), 10)
	}
	return ratelimiter.ByIP(r)
}
