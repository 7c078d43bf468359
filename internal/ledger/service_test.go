// AngelaMos | 2026
// service_test.go

package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/drycleaning-api/internal/core"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	svc := NewService(ServiceConfig{
		Store:       NewMemoryStore(),
		KeyPrefix:   "test",
		DueSoonDays: 3,
		Location:    shopZone,
	})
	svc.now = func() time.Time {
		return time.Date(2026, 5, 10, 12, 0, 0, 0, shopZone)
	}
	return svc
}

func price(v float64) *float64 { return &v }

func seedCloth(t *testing.T, svc *Service, name string, p float64) Cloth {
	t.Helper()

	c, err := svc.CreateCloth(context.Background(), ClothRequest{Name: name, Price: price(p)})
	require.NoError(t, err)
	return c
}

func TestService_CreateEntryPricesFromList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	shirt := seedCloth(t, svc, "Shirt", 3.5)
	suit := seedCloth(t, svc, "Suit", 12.99)

	entry, err := svc.CreateEntry(ctx, CreateEntryRequest{
		CustomerName: " Ada Lovelace ",
		Items: []EntryItemRequest{
			{ClothID: shirt.ID, Quantity: 3},
			{ClothID: suit.ID, Quantity: 1},
		},
		DueDate: "2026-05-12",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", entry.CustomerName)
	assert.Equal(t, []LineItem{
		{ClothID: shirt.ID, ClothName: "Shirt", Quantity: 3, Price: 10.5},
		{ClothID: suit.ID, ClothName: "Suit", Quantity: 1, Price: 12.99},
	}, entry.Items)
	assert.Equal(t, 23.49, entry.Price)
	assert.False(t, entry.IsPaid)
	assert.Equal(t, svc.now().UTC(), entry.CreatedAt)

	stored, err := svc.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Items, stored.Items)
}

func TestService_CreateEntryPriceOverride(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	shirt := seedCloth(t, svc, "Shirt", 4)

	req := CreateEntryRequest{
		CustomerName: "Ada",
		Items:        []EntryItemRequest{{ClothID: shirt.ID, Quantity: 2}},
		DueDate:      "2026-05-12",
	}

	req.Price = price(6.5)
	entry, err := svc.CreateEntry(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 6.5, entry.Price)
	assert.Equal(t, 8.0, entry.Items[0].Price)

	req.Price = price(0)
	entry, err = svc.CreateEntry(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 8.0, entry.Price)
}

func TestService_CreateEntryRejectsUnknownReferences(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	shirt := seedCloth(t, svc, "Shirt", 4)

	_, err := svc.CreateEntry(ctx, CreateEntryRequest{
		CustomerName: "Ada",
		Items:        []EntryItemRequest{{ClothID: "missing", Quantity: 1}},
		DueDate:      "2026-05-12",
	})
	assert.ErrorIs(t, err, ErrUnknownCloth)

	_, err = svc.CreateEntry(ctx, CreateEntryRequest{
		CustomerName: "Ada",
		CustomerID:   "missing",
		Items:        []EntryItemRequest{{ClothID: shirt.ID, Quantity: 1}},
		DueDate:      "2026-05-12",
	})
	assert.ErrorIs(t, err, ErrUnknownCustomer)

	entries, err := svc.ListEntries(ctx, ListEntriesParams{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestService_PriceChangeKeepsSnapshots(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	shirt := seedCloth(t, svc, "Shirt", 4)

	entry, err := svc.CreateEntry(ctx, CreateEntryRequest{
		CustomerName: "Ada",
		Items:        []EntryItemRequest{{ClothID: shirt.ID, Quantity: 2}},
		DueDate:      "2026-05-12",
	})
	require.NoError(t, err)

	_, err = svc.UpdateCloth(ctx, shirt.ID, ClothRequest{Name: "Dress shirt", Price: price(9)})
	require.NoError(t, err)

	stored, err := svc.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shirt", stored.Items[0].ClothName)
	assert.Equal(t, 8.0, stored.Items[0].Price)
	assert.Equal(t, 8.0, stored.Price)

	require.NoError(t, svc.DeleteCloth(ctx, shirt.ID))
	stored, err = svc.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shirt", stored.Items[0].ClothName)
}

func TestService_CustomerRenameDetachesHistory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	shirt := seedCloth(t, svc, "Shirt", 5)

	customer, err := svc.CreateCustomer(ctx, CustomerRequest{Name: "Ada", Phone: " 555-0100 "})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", customer.Phone)

	for _, paid := range []bool{true, false} {
		_, err = svc.CreateEntry(ctx, CreateEntryRequest{
			CustomerName: "Ada",
			CustomerID:   customer.ID,
			Items:        []EntryItemRequest{{ClothID: shirt.ID, Quantity: 1}},
			DueDate:      "2026-05-12",
			IsPaid:       paid,
		})
		require.NoError(t, err)
	}

	stats, err := svc.CustomerStats(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, CustomerStats{TotalEntries: 2, TotalSpent: 10, UnpaidEntries: 1}, stats)

	_, err = svc.UpdateCustomer(ctx, customer.ID, CustomerRequest{Name: "Ada King"})
	require.NoError(t, err)

	history, err := svc.CustomerHistory(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", history.Customer.Name)
	assert.Equal(t, CustomerStats{}, history.Stats)
	assert.Empty(t, history.Entries)

	entries, err := svc.ListEntries(ctx, ListEntriesParams{Search: "ada"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ada", entries[0].CustomerName)

	_, err = svc.CustomerStats(ctx, "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_SetPaidAndDashboard(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	shirt := seedCloth(t, svc, "Shirt", 5)

	create := func(due string) Entry {
		e, err := svc.CreateEntry(ctx, CreateEntryRequest{
			CustomerName: "Ada",
			Items:        []EntryItemRequest{{ClothID: shirt.ID, Quantity: 1}},
			DueDate:      due,
		})
		require.NoError(t, err)
		return e
	}

	today := create("2026-05-10")
	create("2026-05-12")
	create("2026-05-14")
	create("2026-05-09")

	paid, err := svc.SetPaid(ctx, today.ID, true)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.Equal(t, today.Items, paid.Items)

	d, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Total)
	assert.Equal(t, 1, d.Paid)
	assert.Equal(t, 3, d.Unpaid)
	assert.Equal(t, 2, d.DueSoon)

	unpaid, err := svc.ListEntries(ctx, ListEntriesParams{Status: StatusUnpaid})
	require.NoError(t, err)
	assert.Len(t, unpaid, 3)

	_, err = svc.SetPaid(ctx, "ghost", true)
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, svc.DeleteEntry(ctx, today.ID))
	assert.ErrorIs(t, svc.DeleteEntry(ctx, today.ID), core.ErrNotFound)
}

func TestService_Staff(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m, err := svc.CreateStaff(ctx, StaffRequest{
		Name:        "Grace",
		Email:       "Grace@Shop.test",
		Permissions: Permissions{Read: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "grace@shop.test", m.Email)

	m, err = svc.UpdateStaff(ctx, m.ID, StaffRequest{
		Name:        "Grace H",
		Email:       "grace@shop.test",
		Permissions: Permissions{Read: true, Write: true},
	})
	require.NoError(t, err)
	assert.True(t, m.Permissions.Write)

	got, err := svc.GetStaff(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace H", got.Name)

	require.NoError(t, svc.DeleteStaff(ctx, m.ID))
	_, err = svc.GetStaff(ctx, m.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_CollectionSizes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seedCloth(t, svc, "Shirt", 5)
	seedCloth(t, svc, "Suit", 15)
	_, err := svc.CreateCustomer(ctx, CustomerRequest{Name: "Ada"})
	require.NoError(t, err)

	sizes, err := svc.CollectionSizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		CollectionCustomers: 1,
		CollectionClothes:   2,
		CollectionEntries:   0,
		CollectionStaff:     0,
	}, sizes)
}
