package middleware

import (
	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/storefront-cart/api/web"
)

// LoadAndSave loads the caller's session before the handler runs and
// commits it, with its cookie, once the handler returns.
func LoadAndSave(sm *scs.SessionManager) web.Middleware {
	return web.Adapt(sm.LoadAndSave)
}
