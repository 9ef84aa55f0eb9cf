package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/irsalhamdi/storefront-cart/api/web"
	"github.com/sirupsen/logrus"
	"github.com/zenazn/goji/web/mutil"
)

// Logger writes a "started" and a "completed" line per request. Completed
// lines for 4xx and 5xx responses are raised to warn and error.
func Logger(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			log := log.WithFields(logrus.Fields{
				"req_id":     ContextRequestID(ctx),
				"method":     r.Method,
				"path":       r.URL.Path,
				"remoteaddr": r.RemoteAddr,
			})

			log.Debug("started")
			start := time.Now()

			lw := mutil.WrapWriter(w)
			err := handler(ctx, lw, r)

			status := lw.Status()
			if status == 0 {
				status = http.StatusOK
			}

			log = log.WithFields(logrus.Fields{
				"statuscode": status,
				"bytes":      lw.BytesWritten(),
				"since":      time.Since(start).Nanoseconds(),
			})

			switch {
			case status >= http.StatusInternalServerError:
				log.Error("completed")
			case status >= http.StatusBadRequest:
				log.Warn("completed")
			default:
				log.Info("completed")
			}
			return err
		}
		return h
	}
	return m
}
