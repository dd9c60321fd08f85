package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// seedNamespace keeps demo IDs stable between runs so seeding is repeatable
var seedNamespace = uuid.MustParse("6f1f3c2e-8d4b-4a53-9a57-2f0c6e3b9d10")

// SeedProfile is a purchaser profile fixture
type SeedProfile struct {
	ID       string
	FullName *string
	Email    string
}

// SeedProduct is a product fixture
type SeedProduct struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// SeedItem is an order line fixture
type SeedItem struct {
	ID        string
	ProductID string
	Quantity  int64
	Price     decimal.Decimal
}

// SeedOrder is an order fixture
type SeedOrder struct {
	ID        string
	UserID    string
	Status    string
	CreatedAt time.Time
	Items     []SeedItem
}

// Total returns the sum of the order's line subtotals
func (o SeedOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total
}

// Fixtures is a consistent set of demo rows for local development
type Fixtures struct {
	Profiles []SeedProfile
	Products []SeedProduct
	Orders   []SeedOrder
}

func seedID(name string) string {
	return uuid.NewSHA1(seedNamespace, []byte(name)).String()
}

// DemoFixtures returns two customers, one of them without a profile name,
// and an order for each
func DemoFixtures() *Fixtures {
	jane := "Jane Doe"

	widget := SeedProduct{ID: seedID("product/widget"), Name: "Widget", Price: decimal.NewFromInt(10)}
	gadget := SeedProduct{ID: seedID("product/gadget"), Name: "Gadget", Price: decimal.NewFromInt(5)}
	gizmo := SeedProduct{ID: seedID("product/gizmo"), Name: "Gizmo \"XL\"", Price: decimal.RequireFromString("7.25")}

	janeID := seedID("profile/jane")
	anonID := seedID("profile/nameless")

	return &Fixtures{
		Profiles: []SeedProfile{
			{ID: janeID, FullName: &jane, Email: "jane@example.com"},
			{ID: anonID, Email: "nameless@example.com"},
		},
		Products: []SeedProduct{widget, gadget, gizmo},
		Orders: []SeedOrder{
			{
				ID:        seedID("order/jane-1"),
				UserID:    janeID,
				Status:    "paid",
				CreatedAt: time.Date(2024, time.March, 9, 14, 30, 0, 0, time.UTC),
				Items: []SeedItem{
					{ID: seedID("item/jane-1/widget"), ProductID: widget.ID, Quantity: 2, Price: widget.Price},
					{ID: seedID("item/jane-1/gadget"), ProductID: gadget.ID, Quantity: 1, Price: gadget.Price},
				},
			},
			{
				ID:        seedID("order/nameless-1"),
				UserID:    anonID,
				Status:    "pending",
				CreatedAt: time.Date(2024, time.November, 21, 9, 0, 0, 0, time.UTC),
				Items: []SeedItem{
					{ID: seedID("item/nameless-1/gizmo"), ProductID: gizmo.ID, Quantity: 4, Price: gizmo.Price},
				},
			},
		},
	}
}
