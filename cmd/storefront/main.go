package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"orderhai/internal/address"
	"orderhai/internal/api"
	"orderhai/internal/cart"
	"orderhai/internal/catalog"
	"orderhai/internal/config"
	"orderhai/internal/credential"
	"orderhai/internal/favorites"
	"orderhai/internal/model"
	"orderhai/internal/order"
	"orderhai/internal/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the per-session object graph.
type app struct {
	session   *session.Manager
	cart      *cart.Cart
	favorites *favorites.Set
	orders    *order.Flow
	catalog   *catalog.Service
	addresses *address.Book
}

func run(args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)

	// Create context for the command lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize credential storage
	store, err := credential.NewFileStore(cfg.Storage.Dir, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	// Initialize the API client; the store doubles as the token source.
	httpClient := &http.Client{Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second}
	client := api.New(cfg.API.BaseURL, httpClient, store, logger)

	// Initialize the session manager and the session-scoped containers
	sessions := session.NewManager(store, client, logger)

	basket := cart.New(client, sessions, logger)
	a := &app{
		session:   sessions,
		cart:      basket,
		favorites: favorites.New(client, sessions, logger),
		orders:    order.New(basket, client, sessions, logger),
		catalog:   catalog.NewService(client, logger),
		addresses: address.NewBook(client, logger),
	}

	// Session changes drive full reconciliation of the mirrored containers.
	sessions.Subscribe(func(*session.Session) {
		if err := a.cart.Reconcile(ctx); err != nil {
			logger.Debug().Err(err).Msg("cart reconciliation failed")
		}
		if err := a.favorites.Reconcile(ctx); err != nil {
			logger.Debug().Err(err).Msg("favorites reconciliation failed")
		}
	})

	if err := sessions.Load(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	if len(args) == 0 {
		return usage()
	}

	return a.dispatch(ctx, args)
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	switch args[0] {
	case "login":
		if len(args) < 2 {
			return fmt.Errorf("usage: login <phone>")
		}
		if err := a.session.RequestOTP(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("OTP sent. Run: storefront verify <phone> <otp>")
		return nil

	case "verify":
		if len(args) < 3 {
			return fmt.Errorf("usage: verify <phone> <otp>")
		}
		sess, err := a.session.Login(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s\n", sess.User.Phone)
		return nil

	case "logout":
		return a.session.Logout()

	case "products":
		products, err := a.catalog.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Printf("%s  %s (%s)  %.0f\n", p.ID, p.Name, p.Category, catalog.EffectivePrice(&p, ""))
		}
		return nil

	case "cart":
		return a.cartCommand(ctx, args[1:])

	case "favorite":
		if len(args) < 2 {
			return fmt.Errorf("usage: favorite <product-id>")
		}
		out := a.favorites.Toggle(ctx, args[1])
		fmt.Printf("favorite %s: %s\n", args[1], out.Status)
		return nil

	case "favorites":
		for _, id := range a.favorites.IDs() {
			fmt.Println(id)
		}
		return nil

	case "orders":
		if err := a.orders.Refresh(ctx); err != nil {
			return err
		}
		for _, o := range a.orders.History() {
			fmt.Printf("%s  %s  %.0f  %s\n", o.OrderID, o.CreatedAt.Format(time.RFC3339), o.Total, o.Status)
		}
		return nil

	case "order":
		return a.orderCommand(ctx, args[1:])

	case "addresses":
		sess := a.session.Current()
		if sess == nil {
			return fmt.Errorf("not logged in")
		}
		def := address.Default(sess.User.Addresses)
		for _, addr := range sess.User.Addresses {
			marker := " "
			if def != nil && addr.ID == def.ID {
				marker = "*"
			}
			fmt.Printf("%s %s  %s: %s, %s\n", marker, addr.ID, addr.Label, addr.Line1, addr.City)
		}
		return nil

	case "address":
		if len(args) < 5 || args[1] != "add" {
			return fmt.Errorf("usage: address add <label> <line1> <city>")
		}
		addr, err := a.addresses.Add(ctx, api.AddressRequest{
			Label: args[2],
			Line1: args[3],
			City:  args[4],
		})
		if err != nil {
			return err
		}
		fmt.Printf("address added: %s\n", addr.ID)
		return nil

	default:
		return usage()
	}
}

func (a *app) cartCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		for _, l := range a.cart.Lines() {
			fmt.Printf("%s  %s x%d  %.0f\n", l.ID, l.Name, l.Quantity, l.Subtotal())
		}
		fmt.Printf("total: %.0f (%d items)\n", a.cart.TotalPrice(), a.cart.TotalItems())
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart add <product-id> [variant]")
		}
		variant := ""
		if len(args) > 2 {
			variant = args[2]
		}
		product, err := a.catalog.Get(ctx, args[1])
		if err != nil {
			return err
		}
		out := a.cart.AddItem(ctx, model.CartLineInput{
			ProductID:   product.ID,
			Name:        product.Name,
			VariantName: variant,
			UnitPrice:   catalog.EffectivePrice(product, variant),
			Image:       product.Image,
		})
		fmt.Printf("add %s: %s\n", product.Name, out.Status)
		return nil

	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart remove <line-id>")
		}
		out := a.cart.RemoveItem(ctx, args[1])
		fmt.Printf("remove %s: %s\n", args[1], out.Status)
		return nil

	case "clear":
		out := a.cart.Clear(ctx)
		fmt.Printf("clear: %s\n", out.Status)
		return nil

	default:
		return fmt.Errorf("unknown cart command: %s", args[0])
	}
}

func (a *app) orderCommand(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "place" && args[0] != "cancel" {
		return fmt.Errorf("usage: order place <address> <phone> <COD|ONLINE> | order cancel <order-id>")
	}

	if args[0] == "cancel" {
		if len(args) < 2 {
			return fmt.Errorf("usage: order cancel <order-id>")
		}
		o, err := a.orders.Cancel(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("order %s: %s\n", o.OrderID, o.Status)
		return nil
	}

	if len(args) < 4 {
		return fmt.Errorf("usage: order place <address> <phone> <COD|ONLINE>")
	}
	o, err := a.orders.Place(ctx, order.PlaceRequest{
		Address:       args[1],
		Phone:         args[2],
		PaymentMethod: model.PaymentMethod(args[3]),
	})
	if err != nil {
		return err
	}
	fmt.Printf("order placed: %s, total %.0f\n", o.OrderID, o.Total)
	return nil
}

func usage() error {
	fmt.Fprintln(os.Stderr, `usage: storefront <command>

  login <phone>                    request a login OTP
  verify <phone> <otp>             complete login
  logout                           clear the stored session
  products                         list the catalogue
  cart [add|remove|clear]          show or mutate the cart
  favorite <product-id>            toggle a favorite
  favorites                        list favorited product ids
  addresses                        list saved addresses (* = default)
  address add <label> <line1> <city>  save a new address
  order place <addr> <phone> <pm>  place the current cart as an order
  order cancel <order-id>          cancel an order
  orders                           list order history`)
	return nil
}
