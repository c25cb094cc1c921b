package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/archiveshq/storefront/internal/authflow"
	"github.com/archiveshq/storefront/internal/cart"
	"github.com/archiveshq/storefront/internal/catalog"
	"github.com/archiveshq/storefront/internal/ratings"
	"github.com/archiveshq/storefront/pkg/enums"
	"github.com/archiveshq/storefront/pkg/logger"
)

var errQuit = errors.New("quit")

type shellParams struct {
	Catalog *catalog.Catalog
	Ratings *ratings.Store
	Auth    *authflow.Controller
	Cart    *cart.Cart
	Logger  *logger.Logger
	In      io.Reader
	Out     io.Writer
}

// shell is the interactive storefront front end. It keeps the current
// filter and sort selection between commands the way a browse page would.
type shell struct {
	catalog *catalog.Catalog
	ratings *ratings.Store
	auth    *authflow.Controller
	cart    *cart.Cart
	logger  *logger.Logger
	in      io.Reader
	out     io.Writer

	filter  catalog.Filter
	sortKey enums.SortKey
}

func newShell(params shellParams) *shell {
	return &shell{
		catalog: params.Catalog,
		ratings: params.Ratings,
		auth:    params.Auth,
		cart:    params.Cart,
		logger:  params.Logger,
		in:      params.In,
		out:     params.Out,
		filter:  catalog.DefaultFilter(),
		sortKey: enums.SortNewest,
	}
}

func (s *shell) run(ctx context.Context) error {
	s.printf("The Archives. Type 'help' for commands.\n")
	scanner := bufio.NewScanner(s.in)
	for {
		s.printf("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := s.dispatch(ctx, strings.Fields(scanner.Text())); err != nil {
			if errors.Is(err, errQuit) {
				return errQuit
			}
			s.printf("error: %v\n", err)
		}
	}
}

func (s *shell) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help":
		s.printHelp()
	case "list":
		s.printProducts(ctx)
	case "filter":
		return s.setFilter(rest)
	case "sort":
		return s.setSort(rest)
	case "show":
		return s.showProduct(ctx, rest)
	case "rate":
		return s.rateProduct(ctx, rest)
	case "save":
		return s.toggleSaved(ctx, rest)
	case "saved":
		s.printSaved()
	case "cart":
		return s.cartCommand(rest)
	case "login":
		return s.login(ctx, rest)
	case "signup":
		return s.signup(ctx, rest)
	case "verify":
		return s.verify(ctx, rest)
	case "resend":
		return s.resend(ctx, rest)
	case "check-username":
		return s.checkUsername(ctx, rest)
	case "whoami":
		s.printUser()
	case "logout":
		s.auth.Logout(ctx)
		s.printf("signed out\n")
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (s *shell) printHelp() {
	s.printf(`commands:
  list                                  browse the catalog with the active filter and sort
  filter category|era|price|rating ...  narrow the browse view ('filter reset' clears)
  sort newest|price-asc|price-desc|rating-desc
  show <id>                             product details
  rate <id> <1-5>                       rate a product
  save <id>                             toggle a saved item (requires sign-in)
  saved                                 list saved items
  cart add|rm|qty|show|clear ...        manage the cart
  login <email> <password>
  signup <username> <email> <phone> <password>
  verify <email> <otp>
  resend <email>
  check-username <username>
  whoami / logout / quit
`)
}

func (s *shell) printProducts(ctx context.Context) {
	visible := catalog.Apply(s.catalog.Products(), s.filter, s.sortKey, s.ratings.Stored(ctx))
	if len(visible) == 0 {
		s.printf("no products match the active filter\n")
		return
	}
	userRatings := s.ratings.Stored(ctx)
	for _, p := range visible {
		rating := ratings.DisplayRating(p.Rating, p.RatingCount, userRatings[p.ID])
		count := ratings.DisplayRatingCount(p.RatingCount, userRatings[p.ID])
		s.printf("%-24s %-12s %4d  $%-8s %.1f (%d)\n", p.ID, p.Category, p.Year, p.Price, rating, count)
	}
}

func (s *shell) setFilter(args []string) error {
	if len(args) == 1 && args[0] == "reset" {
		s.filter = catalog.DefaultFilter()
		return nil
	}
	if len(args) < 2 {
		return errors.New("usage: filter category|era|price|rating <value...> (or 'filter reset')")
	}
	switch args[0] {
	case "category":
		category, err := enums.ParseProductCategory(args[1])
		if err != nil {
			return err
		}
		s.filter.Category = &category
	case "era":
		era, err := enums.ParseEra(args[1])
		if err != nil {
			return err
		}
		s.filter.Era = &era
	case "price":
		if len(args) < 3 {
			return errors.New("usage: filter price <min> <max>")
		}
		min, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid minimum price %q", args[1])
		}
		max, err := decimal.NewFromString(args[2])
		if err != nil {
			return fmt.Errorf("invalid maximum price %q", args[2])
		}
		s.filter.PriceMin, s.filter.PriceMax = min, max
	case "rating":
		min, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid minimum rating %q", args[1])
		}
		s.filter.MinRating = &min
	default:
		return fmt.Errorf("unknown filter %q", args[0])
	}
	return nil
}

func (s *shell) setSort(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: sort newest|price-asc|price-desc|rating-desc")
	}
	key, err := enums.ParseSortKey(args[0])
	if err != nil {
		return err
	}
	s.sortKey = key
	return nil
}

func (s *shell) showProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: show <id>")
	}
	p, ok := s.catalog.ByID(args[0])
	if !ok {
		return fmt.Errorf("no product %q", args[0])
	}

	userRatings := s.ratings.Stored(ctx)
	rating := ratings.DisplayRating(p.Rating, p.RatingCount, userRatings[p.ID])
	count := ratings.DisplayRatingCount(p.RatingCount, userRatings[p.ID])

	s.printf("%s (%d, %s)\n%s\n$%s  %.1f stars (%d ratings)\n", p.Name, p.Year, p.Era, p.Tagline, p.Price, rating, count)
	for _, spec := range p.Specs {
		s.printf("  %s: %s\n", spec.Label, spec.Value)
	}
	if related := s.catalog.Related(p, 3); len(related) > 0 {
		s.printf("related:")
		for _, r := range related {
			s.printf(" %s", r.ID)
		}
		s.printf("\n")
	}
	return nil
}

func (s *shell) rateProduct(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: rate <id> <1-5>")
	}
	if _, ok := s.catalog.ByID(args[0]); !ok {
		return fmt.Errorf("no product %q", args[0])
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid rating %q", args[1])
	}
	s.ratings.Save(ctx, args[0], value)
	return nil
}

func (s *shell) toggleSaved(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: save <id>")
	}
	if !s.auth.IsLoggedIn() {
		return errors.New("sign in to save items")
	}
	if _, ok := s.catalog.ByID(args[0]); !ok {
		return fmt.Errorf("no product %q", args[0])
	}
	s.auth.ToggleSavedItem(ctx, args[0])
	if s.auth.IsSaved(args[0]) {
		s.printf("saved %s\n", args[0])
	} else {
		s.printf("removed %s\n", args[0])
	}
	return nil
}

func (s *shell) printSaved() {
	user := s.auth.User()
	if user == nil {
		s.printf("not signed in\n")
		return
	}
	if len(user.SavedItems) == 0 {
		s.printf("no saved items\n")
		return
	}
	for _, id := range user.SavedItems {
		s.printf("%s\n", id)
	}
}

func (s *shell) cartCommand(args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}
	switch args[0] {
	case "add":
		if len(args) != 2 {
			return errors.New("usage: cart add <id>")
		}
		p, ok := s.catalog.ByID(args[1])
		if !ok {
			return fmt.Errorf("no product %q", args[1])
		}
		s.cart.Add(p)
	case "rm":
		if len(args) != 2 {
			return errors.New("usage: cart rm <id>")
		}
		s.cart.Remove(args[1])
	case "qty":
		if len(args) != 3 {
			return errors.New("usage: cart qty <id> <n>")
		}
		quantity, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[2])
		}
		s.cart.UpdateQuantity(args[1], quantity)
	case "clear":
		s.cart.Clear()
	case "show":
		items := s.cart.Items()
		if len(items) == 0 {
			s.printf("cart is empty\n")
			return nil
		}
		for _, item := range items {
			s.printf("%-24s x%d  $%s\n", item.Product.ID, item.Quantity, item.Product.Price)
		}
		s.printf("total: %d items, $%s\n", s.cart.TotalItems(), s.cart.TotalPrice())
	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
	return nil
}

func (s *shell) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}
	result := s.auth.Login(ctx, args[0], args[1])
	if !result.OK {
		s.printf("%s\n", result.Message)
		return nil
	}
	s.printf("welcome back, %s\n", s.auth.User().Name)
	return nil
}

func (s *shell) signup(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return errors.New("usage: signup <username> <email> <phone> <password>")
	}
	result := s.auth.Signup(ctx, args[0], args[1], args[2], args[3])
	if !result.OK {
		s.printf("%s\n", result.Message)
		return nil
	}
	s.printf("check your email for a verification code, then run: verify %s <otp>\n", args[1])
	return nil
}

func (s *shell) verify(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: verify <email> <otp>")
	}
	result := s.auth.VerifyOTP(ctx, args[0], args[1])
	if !result.OK {
		s.printf("%s\n", result.Message)
		return nil
	}
	s.printf("verified, welcome %s\n", s.auth.User().Name)
	return nil
}

func (s *shell) resend(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: resend <email>")
	}
	result := s.auth.ResendOTP(ctx, args[0])
	if result.Message != "" {
		s.printf("%s\n", result.Message)
	} else if result.OK {
		s.printf("code sent\n")
	}
	return nil
}

func (s *shell) checkUsername(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: check-username <username>")
	}
	available := s.auth.CheckUsername(ctx, args[0])
	switch {
	case available == nil:
		s.printf("could not check availability\n")
	case *available:
		s.printf("%s is available\n", args[0])
	default:
		s.printf("%s is taken\n", args[0])
	}
	return nil
}

func (s *shell) printUser() {
	user := s.auth.User()
	if user == nil {
		s.printf("not signed in\n")
		return
	}
	s.printf("%s <%s>, %d saved items\n", user.Name, user.Email, len(user.SavedItems))
}

func (s *shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
