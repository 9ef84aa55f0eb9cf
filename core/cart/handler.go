package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/irsalhamdi/storefront-cart/api/web"
	"github.com/irsalhamdi/storefront-cart/api/weberr"
	"github.com/irsalhamdi/storefront-cart/notice"
	"github.com/irsalhamdi/storefront-cart/storage"
	"github.com/irsalhamdi/storefront-cart/validate"
	"github.com/sirupsen/logrus"
)

// Binder hands out the storage that belongs to the request in ctx.
type Binder interface {
	Bind(ctx context.Context) storage.Storage
}

// Env is what the cart handlers need to open the caller's cart.
type Env struct {
	Storage Binder
	Key     string
	Log     logrus.FieldLogger
}

// Open opens the cart of the request in ctx. Notices go to the log and to
// n, when given.
func (e Env) Open(ctx context.Context, n notice.Notifier) (*Store, error) {
	log := e.Log.WithField("key", e.Key)

	return Open(
		e.Storage.Bind(ctx),
		WithKey(e.Key),
		WithLogger(log),
		WithNotifier(notice.Multi(notice.Log(log), n)),
	)
}

// View is the read model of a cart sent to clients.
type View struct {
	Items []Item `json:"items"`
	Totals
}

func NewView(s *Store) View {
	return View{Items: s.Items(), Totals: s.Totals()}
}

type MutationResponse struct {
	Outcome Outcome         `json:"outcome"`
	Notices []notice.Notice `json:"notices"`
	Cart    View            `json:"cart"`
}

func (e Env) mutate(ctx context.Context, w http.ResponseWriter, op func(s *Store) Result) error {
	var rec notice.Recorder

	s, err := e.Open(ctx, &rec)
	if err != nil {
		return fmt.Errorf("opening cart: %w", err)
	}

	res := op(s)

	resp := MutationResponse{
		Outcome: res.Outcome,
		Notices: rec.Notices(),
		Cart:    NewView(s),
	}
	return web.Respond(ctx, w, resp, http.StatusOK)
}

func itemID(r *http.Request) (int, error) {
	raw := web.Param(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, weberr.BadRequest(fmt.Errorf("item id[%s] is not an integer", raw))
	}
	return id, nil
}

func HandleShow(env Env) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		s, err := env.Open(ctx, nil)
		if err != nil {
			return fmt.Errorf("opening cart: %w", err)
		}

		return web.Respond(ctx, w, NewView(s), http.StatusOK)
	}
}

func HandleCreateItem(env Env) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if in.Price.IsNegative() || in.OriginalPrice.IsNegative() {
			err := errors.New("prices must not be negative")
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		return env.mutate(ctx, w, func(s *Store) Result {
			return s.AddItem(in)
		})
	}
}

func HandleUpdateItem(env Env) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := itemID(r)
		if err != nil {
			return err
		}

		var up QuantityUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		return env.mutate(ctx, w, func(s *Store) Result {
			return s.UpdateQuantity(id, up.Quantity)
		})
	}
}

func HandleDeleteItem(env Env) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := itemID(r)
		if err != nil {
			return err
		}

		return env.mutate(ctx, w, func(s *Store) Result {
			return s.RemoveItem(id)
		})
	}
}

func HandleDelete(env Env) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return env.mutate(ctx, w, func(s *Store) Result {
			return s.ClearCart()
		})
	}
}
