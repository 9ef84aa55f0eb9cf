package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/storefront-cart/api/web"
	"github.com/irsalhamdi/storefront-cart/api/weberr"
	"github.com/irsalhamdi/storefront-cart/core/cart"
	"github.com/irsalhamdi/storefront-cart/notice"
	"github.com/irsalhamdi/storefront-cart/validate"
	"github.com/sirupsen/logrus"
)

type CheckoutResponse struct {
	Receipt Receipt         `json:"receipt"`
	Notices []notice.Notice `json:"notices"`
}

// checkout captures the cart into a receipt and empties it.
func checkout(s *cart.Store, now time.Time) (Receipt, error) {
	if s.Len() == 0 {
		return Receipt{}, errors.New("no items to checkout")
	}

	rcpt := Receipt{
		ID:       validate.GenerateID(),
		Status:   Pending,
		Items:    s.Items(),
		Totals:   s.Totals(),
		PlacedAt: now.UTC(),
	}

	s.ClearCart()
	return rcpt, nil
}

func HandleCheckout(env cart.Env) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var rec notice.Recorder

		s, err := env.Open(ctx, &rec)
		if err != nil {
			return fmt.Errorf("opening cart: %w", err)
		}

		// Announce the order before the cart's own "cleared" notice.
		rec.Notify(notice.Notice{
			Title:       "Order placed successfully!",
			Description: "Thank you for your purchase.",
		})

		rcpt, err := checkout(s, time.Now())
		if err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		env.Log.WithFields(logrus.Fields{
			"order_id": rcpt.ID,
			"items":    rcpt.Totals.TotalItems,
			"total":    rcpt.Totals.Total.String(),
		}).Info("order placed")

		resp := CheckoutResponse{
			Receipt: rcpt,
			Notices: rec.Notices(),
		}
		return web.Respond(ctx, w, resp, http.StatusCreated)
	}
}
