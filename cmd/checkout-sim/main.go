// checkout-sim drives the client cart store against a running API: it loads
// the cart, adds a product, and prints the resulting lines and totals. Useful
// for exercising the optimistic store end to end without a browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pakety/internal/cartstore"
)

func main() {
	var (
		apiURL    string
		sessionID string
		productID string
		quantity  string
	)
	flag.StringVar(&apiURL, "api", "http://localhost:8080", "Base URL of the cart API")
	flag.StringVar(&sessionID, "session", "", "Session id (random if empty)")
	flag.StringVar(&productID, "product", "", "Product id to add")
	flag.StringVar(&quantity, "qty", "1", "Quantity to add")
	flag.Parse()

	logger := log.New(os.Stdout, "[checkout-sim] ", log.LstdFlags)

	if sessionID == "" {
		sessionID = uuid.NewString()
		logger.Printf("using session %s", sessionID)
	}

	qty, err := decimal.NewFromString(quantity)
	if err != nil {
		logger.Fatalf("invalid quantity %q: %v", quantity, err)
	}

	ctx := context.Background()
	client := cartstore.NewClient(apiURL, sessionID)
	store := cartstore.New(client, cartstore.WithOnAddSuccess(func(id string) {
		logger.Printf("added product %s", id)
	}))

	if err := store.Init(ctx); err != nil {
		logger.Fatalf("init store: %v", err)
	}

	if productID != "" {
		if err := store.AddLine(ctx, productID, qty); err != nil {
			logger.Fatalf("add line: %v", err)
		}
	}

	fmt.Printf("cart (%d lines):\n", store.TotalCount())
	for _, line := range store.Lines() {
		name := line.ProductID
		if line.Product != nil {
			name = line.Product.Name
		}
		fmt.Printf("  %-24s x %s\n", name, line.Quantity)
	}

	totals := store.Totals()
	promo := store.Promotion()
	fmt.Printf("subtotal:     %s\n", totals.Subtotal)
	fmt.Printf("delivery fee: %s\n", totals.DeliveryFee)
	fmt.Printf("discount:     %s\n", totals.Discount)
	fmt.Printf("total:        %s\n", totals.Total)
	if promo.NextTier != nil {
		fmt.Printf("spend %s more to unlock the next reward\n", promo.AmountToNext)
	}
}
