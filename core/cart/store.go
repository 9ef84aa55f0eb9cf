package cart

import (
	"errors"
	"fmt"
	"io"

	"github.com/irsalhamdi/storefront-cart/notice"
	"github.com/irsalhamdi/storefront-cart/storage"
	"github.com/sirupsen/logrus"
)

// DefaultKey is the storage key the snapshot is kept under.
const DefaultKey = "cart"

var ErrNoStorage = errors.New("cart storage is required")

// Store is the single authority over one cart: every operation mutates
// the in-memory Cart, saves the full snapshot when something changed and
// then emits a notice. A Store is not safe for concurrent use.
type Store struct {
	cart     *Cart
	storage  storage.Storage
	key      string
	notifier notice.Notifier
	log      logrus.FieldLogger
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithNotifier(n notice.Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Open builds a Store over st and hydrates it from the snapshot saved
// there. A missing, unreadable or invalid snapshot yields an empty cart;
// only a nil st is an error.
func Open(st storage.Storage, opts ...Option) (*Store, error) {
	if st == nil {
		return nil, ErrNoStorage
	}

	discard := logrus.New()
	discard.Out = io.Discard

	s := &Store{
		cart:     New(nil),
		storage:  st,
		key:      DefaultKey,
		notifier: notice.Discard,
		log:      discard,
	}
	for _, opt := range opts {
		opt(s)
	}

	items, err := s.load()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"key":   s.key,
			"error": err,
		}).Warn("discarding saved cart")
		return s, nil
	}
	s.cart = New(items)

	return s, nil
}

func (s *Store) load() ([]Item, error) {
	raw, ok, err := s.storage.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return UnmarshalSnapshot([]byte(raw))
}

// Save writes the full cart under the store key.
func (s *Store) Save() error {
	b, err := MarshalSnapshot(s.cart.Items())
	if err != nil {
		return err
	}
	if err := s.storage.Set(s.key, string(b)); err != nil {
		return fmt.Errorf("writing snapshot under key[%s]: %w", s.key, err)
	}
	return nil
}

func (s *Store) AddItem(in ItemNew) Result {
	return s.commit(s.cart.Add(in))
}

func (s *Store) RemoveItem(id int) Result {
	return s.commit(s.cart.Remove(id))
}

func (s *Store) UpdateQuantity(id int, quantity int) Result {
	return s.commit(s.cart.UpdateQuantity(id, quantity))
}

func (s *Store) ClearCart() Result {
	return s.commit(s.cart.Clear())
}

// Items returns the lines in insertion order.
func (s *Store) Items() []Item { return s.cart.Items() }

func (s *Store) Totals() Totals { return s.cart.Totals() }

func (s *Store) Len() int { return s.cart.Len() }

func (s *Store) commit(res Result) Result {
	if res.Outcome.Changed() {
		if err := s.Save(); err != nil {
			s.log.WithFields(logrus.Fields{
				"key":     s.key,
				"outcome": res.Outcome,
				"error":   err,
			}).Error("persisting cart")
		}
	}

	if n, ok := res.Notice(); ok {
		s.notify(n)
	}
	return res
}

func (s *Store) notify(n notice.Notice) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", r).Error("notifier panicked")
		}
	}()
	s.notifier.Notify(n)
}

// Notice returns the message announcing res, if the outcome has one.
func (res Result) Notice() (notice.Notice, bool) {
	switch res.Outcome {
	case Added:
		return notice.Notice{
			Title:       "Added to cart",
			Description: fmt.Sprintf("%s has been added to your cart", res.Item.Name),
		}, true
	case QuantityIncreased:
		return notice.Notice{
			Title:       "Cart updated",
			Description: fmt.Sprintf("%s quantity increased to %d", res.Item.Name, res.Item.Quantity),
		}, true
	case MaxQuantityReached:
		return notice.Notice{
			Title:       "Maximum quantity reached",
			Description: fmt.Sprintf("You can't add more than %d of the same item", MaxQuantity),
		}, true
	case Removed:
		return notice.Notice{
			Title:       "Item removed",
			Description: fmt.Sprintf("%s has been removed from your cart", res.Item.Name),
		}, true
	case Cleared:
		return notice.Notice{
			Title:       "Cart cleared",
			Description: "All items have been removed from your cart",
		}, true
	}
	return notice.Notice{}, false
}
