package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/storefront-cart/core/cart"
	"github.com/irsalhamdi/storefront-cart/core/order"
	"github.com/irsalhamdi/storefront-cart/rate"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
)

type testEnv struct {
	*httptest.Server
}

func newTestEnv(t *testing.T, lim *rate.Limiter) *testEnv {
	t.Helper()

	log, _ := test.NewNullLogger()

	sm := scs.New()
	sm.Lifetime = time.Hour

	srv := httptest.NewServer(APIMux(APIConfig{
		Log:     log,
		Session: sm,
		Limiter: lim,
		CartKey: cart.DefaultKey,
	}))
	t.Cleanup(srv.Close)

	return &testEnv{srv}
}

// client returns an http client with its own cookie jar, i.e. its own
// session and cart.
func (env *testEnv) client(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

func (env *testEnv) do(t *testing.T, c *http.Client, method, path string, body any, status int, out any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	r, err := http.NewRequest(method, env.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}

	w, err := c.Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != status {
		t.Fatalf("%s %s: expected status %d, got %s", method, path, status, w.Status)
	}

	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: cannot decode response: %v", method, path, err)
		}
	}
}

func widget() map[string]any {
	return map[string]any{
		"id":            1,
		"name":          "Widget",
		"price":         100,
		"originalPrice": 120,
		"image":         "https://example/img.png",
	}
}

func TestCartFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	c := env.client(t)

	var view cart.View
	env.do(t, c, http.MethodGet, "/cart", nil, http.StatusOK, &view)
	if len(view.Items) != 0 || view.TotalItems != 0 || !view.Total.IsZero() {
		t.Fatalf("expected an empty cart, got %+v", view)
	}

	var resp cart.MutationResponse
	env.do(t, c, http.MethodPost, "/cart/items", widget(), http.StatusOK, &resp)
	if resp.Outcome != cart.Added {
		t.Fatalf("expected outcome %s, got %s", cart.Added, resp.Outcome)
	}
	if len(resp.Notices) != 1 || resp.Notices[0].Title != "Added to cart" {
		t.Fatalf("unexpected notices %+v", resp.Notices)
	}
	if !resp.Cart.Subtotal.Equal(decimal.NewFromInt(100)) || !resp.Cart.Discount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("unexpected totals %+v", resp.Cart.Totals)
	}

	for i := 0; i < cart.MaxQuantity; i++ {
		env.do(t, c, http.MethodPost, "/cart/items", widget(), http.StatusOK, &resp)
	}
	if resp.Outcome != cart.MaxQuantityReached {
		t.Fatalf("expected outcome %s, got %s", cart.MaxQuantityReached, resp.Outcome)
	}
	if resp.Notices[0].Title != "Maximum quantity reached" {
		t.Fatalf("unexpected notices %+v", resp.Notices)
	}
	if q := resp.Cart.Items[0].Quantity; q != cart.MaxQuantity {
		t.Fatalf("expected quantity %d, got %d", cart.MaxQuantity, q)
	}

	env.do(t, c, http.MethodPut, "/cart/items/1", map[string]int{"quantity": 0}, http.StatusOK, &resp)
	if resp.Outcome != cart.Rejected || len(resp.Notices) != 0 || resp.Cart.Items[0].Quantity != cart.MaxQuantity {
		t.Fatalf("expected a silent rejection, got %+v", resp)
	}

	env.do(t, c, http.MethodPut, "/cart/items/1", map[string]int{"quantity": 2}, http.StatusOK, &resp)
	if resp.Outcome != cart.QuantityUpdated || resp.Cart.TotalItems != 2 {
		t.Fatalf("expected quantity 2, got %+v", resp)
	}

	env.do(t, c, http.MethodDelete, "/cart/items/999", nil, http.StatusOK, &resp)
	if resp.Outcome != cart.NotFound || len(resp.Notices) != 0 {
		t.Fatalf("expected a silent not_found, got %+v", resp)
	}

	// The cart survives across requests through the session.
	env.do(t, c, http.MethodGet, "/cart", nil, http.StatusOK, &view)
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Fatalf("expected the session cart to be kept, got %+v", view)
	}

	other := env.client(t)
	env.do(t, other, http.MethodGet, "/cart", nil, http.StatusOK, &view)
	if len(view.Items) != 0 {
		t.Fatalf("another session must not see the cart, got %+v", view)
	}

	env.do(t, c, http.MethodDelete, "/cart/items/1", nil, http.StatusOK, &resp)
	if resp.Outcome != cart.Removed || resp.Notices[0].Description != "Widget has been removed from your cart" {
		t.Fatalf("unexpected removal response %+v", resp)
	}

	env.do(t, c, http.MethodDelete, "/cart", nil, http.StatusOK, &resp)
	if resp.Outcome != cart.Cleared || resp.Notices[0].Title != "Cart cleared" {
		t.Fatalf("unexpected clear response %+v", resp)
	}
}

func TestBadRequests(t *testing.T) {
	env := newTestEnv(t, nil)
	c := env.client(t)

	var er struct {
		Error string `json:"error"`
	}

	env.do(t, c, http.MethodPut, "/cart/items/abc", map[string]int{"quantity": 2}, http.StatusBadRequest, &er)
	if er.Error != "bad request" {
		t.Fatalf("unexpected error body %q", er.Error)
	}

	noName := widget()
	delete(noName, "name")
	env.do(t, c, http.MethodPost, "/cart/items", noName, http.StatusBadRequest, &er)
	if er.Error != "name is a required field" {
		t.Fatalf("unexpected error body %q", er.Error)
	}

	negative := widget()
	negative["price"] = -1
	env.do(t, c, http.MethodPost, "/cart/items", negative, http.StatusBadRequest, &er)
	if er.Error != "prices must not be negative" {
		t.Fatalf("unexpected error body %q", er.Error)
	}

	unknown := widget()
	unknown["quantity"] = 3
	env.do(t, c, http.MethodPost, "/cart/items", unknown, http.StatusBadRequest, nil)

	env.do(t, c, http.MethodPost, "/cart/items", nil, http.StatusBadRequest, nil)
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t, nil)
	c := env.client(t)

	env.do(t, c, http.MethodPost, "/orders", nil, http.StatusUnprocessableEntity, nil)

	second := widget()
	second["id"] = 2
	second["price"] = 200
	second["originalPrice"] = 200

	env.do(t, c, http.MethodPost, "/cart/items", widget(), http.StatusOK, nil)
	env.do(t, c, http.MethodPost, "/cart/items", widget(), http.StatusOK, nil)
	env.do(t, c, http.MethodPost, "/cart/items", second, http.StatusOK, nil)

	var resp order.CheckoutResponse
	env.do(t, c, http.MethodPost, "/orders", nil, http.StatusCreated, &resp)

	if resp.Receipt.ID == "" || resp.Receipt.Status != order.Pending {
		t.Fatalf("unexpected receipt %+v", resp.Receipt)
	}
	if len(resp.Receipt.Items) != 2 || resp.Receipt.Totals.TotalItems != 3 {
		t.Fatalf("unexpected receipt lines %+v", resp.Receipt)
	}
	if !resp.Receipt.Totals.Subtotal.Equal(decimal.NewFromInt(400)) || !resp.Receipt.Totals.Total.Equal(decimal.NewFromInt(360)) {
		t.Fatalf("unexpected receipt totals %+v", resp.Receipt.Totals)
	}

	titles := []string{}
	for _, n := range resp.Notices {
		titles = append(titles, n.Title)
	}
	if len(titles) != 2 || titles[0] != "Order placed successfully!" || titles[1] != "Cart cleared" {
		t.Fatalf("unexpected notices %v", titles)
	}

	var view cart.View
	env.do(t, c, http.MethodGet, "/cart", nil, http.StatusOK, &view)
	if len(view.Items) != 0 {
		t.Fatalf("expected checkout to clear the cart, got %+v", view)
	}

	env.do(t, c, http.MethodPost, "/orders", nil, http.StatusUnprocessableEntity, nil)
}

func TestRateLimit(t *testing.T) {
	lim := rate.NewLimiter(2, 1, rate.Every(time.Hour))
	defer lim.Stop()

	env := newTestEnv(t, lim)
	c := env.client(t)

	env.do(t, c, http.MethodGet, "/cart", nil, http.StatusOK, nil)
	env.do(t, c, http.MethodGet, "/cart", nil, http.StatusOK, nil)
	env.do(t, c, http.MethodGet, "/cart", nil, http.StatusTooManyRequests, nil)
}
