package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/irsalhamdi/storefront-cart/api/web"
	"github.com/irsalhamdi/storefront-cart/api/weberr"
	"github.com/irsalhamdi/storefront-cart/rate"
)

// RateLimit rejects requests from a remote host that exhausted its
// allowance in lim.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !lim.Check(host) {
				return weberr.TooManyRequests(
					fmt.Errorf("client[%s] exceeded the rate limit", host),
					weberr.WithFields(map[string]interface{}{"client": host}),
				)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
