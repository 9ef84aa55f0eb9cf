// Command cartctl manages a cart kept in a local SQLite file. Every
// invocation reloads the cart from disk, applies one operation and saves it.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/irsalhamdi/storefront-cart/core/cart"
	"github.com/irsalhamdi/storefront-cart/notice"
	"github.com/irsalhamdi/storefront-cart/storage/sqlite"
	"github.com/irsalhamdi/storefront-cart/validate"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	dbPath  string
	key     string
	verbose bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "cartctl",
		Short:        "Inspect and change a locally persisted shopping cart",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.dbPath, "db", "cart.db", "SQLite file holding the cart")
	root.PersistentFlags().StringVar(&a.key, "key", cart.DefaultKey, "storage key of the cart snapshot")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		a.showCmd(),
		a.addCmd(),
		a.removeCmd(),
		a.updateCmd(),
		a.clearCmd(),
	)
	return root
}

// run opens the cart, applies op and prints the notices and the resulting
// cart to the command output.
func (a *app) run(cmd *cobra.Command, op func(s *cart.Store) cart.Result) error {
	out := cmd.OutOrStdout()

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(logrus.WarnLevel)
	if a.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	st, err := sqlite.Open(a.dbPath)
	if err != nil {
		return fmt.Errorf("opening cart database: %w", err)
	}
	defer st.Close()

	printer := notice.Func(func(n notice.Notice) {
		fmt.Fprintf(out, "%s: %s\n", n.Title, n.Description)
	})

	s, err := cart.Open(st,
		cart.WithKey(a.key),
		cart.WithLogger(log.WithField("db", a.dbPath)),
		cart.WithNotifier(printer),
	)
	if err != nil {
		return err
	}

	if op != nil {
		res := op(s)
		log.WithFields(logrus.Fields{
			"outcome": res.Outcome,
			"item_id": res.Item.ID,
		}).Debug("applied")
	}

	return printCart(out, s)
}

func printCart(out io.Writer, s *cart.Store) error {
	items := s.Items()
	if len(items) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tORIGINAL\tQTY")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", it.ID, it.Name, it.Price, it.OriginalPrice, it.Quantity)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	t := s.Totals()
	_, err := fmt.Fprintf(out, "items: %d  subtotal: %s  discount: %s  total: %s\n",
		t.TotalItems, t.Subtotal, t.Discount, t.Total)
	return err
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart and its totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, nil)
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	var (
		in          cart.ItemNew
		price, orig string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add one unit of a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.Price, err = parseAmount("price", price); err != nil {
				return err
			}
			if orig == "" {
				in.OriginalPrice = in.Price
			} else if in.OriginalPrice, err = parseAmount("original-price", orig); err != nil {
				return err
			}
			if err := validate.Check(in); err != nil {
				return err
			}

			return a.run(cmd, func(s *cart.Store) cart.Result {
				return s.AddItem(in)
			})
		},
	}

	cmd.Flags().IntVar(&in.ID, "id", 0, "product id")
	cmd.Flags().StringVar(&in.Name, "name", "", "product name")
	cmd.Flags().StringVar(&price, "price", "", "current unit price")
	cmd.Flags().StringVar(&orig, "original-price", "", "unit price before discount (defaults to --price)")
	cmd.Flags().StringVar(&in.Image, "image", "", "image URL")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("price")

	return cmd
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}

			return a.run(cmd, func(s *cart.Store) cart.Result {
				return s.RemoveItem(id)
			})
		},
	}
}

func (a *app) updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update ID QUANTITY",
		Short: fmt.Sprintf("Set the quantity of a product (%d-%d)", cart.MinQuantity, cart.MaxQuantity),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			q, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}

			return a.run(cmd, func(s *cart.Store) cart.Result {
				return s.UpdateQuantity(id, q)
			})
		},
	}
}

func (a *app) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every product from the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(s *cart.Store) cart.Result {
				return s.ClearCart()
			})
		},
	}
}

func parseAmount(flag, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid --%s %q: %w", flag, v, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("--%s must not be negative", flag)
	}
	return d, nil
}
