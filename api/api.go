package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/irsalhamdi/storefront-cart/api/middleware"
	"github.com/irsalhamdi/storefront-cart/api/web"
	"github.com/irsalhamdi/storefront-cart/core/cart"
	"github.com/irsalhamdi/storefront-cart/core/order"
	"github.com/irsalhamdi/storefront-cart/rate"
	"github.com/irsalhamdi/storefront-cart/storage/session"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	Session    *scs.SessionManager
	Limiter    *rate.Limiter
	CartKey    string
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())
	if cfg.Limiter != nil {
		a.mw = append(a.mw, middleware.RateLimit(cfg.Limiter))
	}

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	env := cart.Env{
		Storage: session.New(cfg.Session),
		Key:     cfg.CartKey,
		Log:     cfg.Log,
	}

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(env))
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete(env))
	a.Handle(http.MethodPost, "/cart/items", cart.HandleCreateItem(env))
	a.Handle(http.MethodPut, "/cart/items/{id}", cart.HandleUpdateItem(env))
	a.Handle(http.MethodDelete, "/cart/items/{id}", cart.HandleDeleteItem(env))

	a.Handle(http.MethodPost, "/orders", order.HandleCheckout(env))

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
