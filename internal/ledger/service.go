// AngelaMos | 2026
// service.go

package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/carterperez-dev/drycleaning-api/internal/core"
)

var (
	ErrUnknownCloth    = errors.New("unknown cloth")
	ErrUnknownCustomer = errors.New("unknown customer")
)

type ServiceConfig struct {
	Store       DocumentStore
	KeyPrefix   string
	DueSoonDays int
	Location    *time.Location
	Logger      *slog.Logger
}

type Service struct {
	customers *Collection[Customer]
	clothes   *Collection[Cloth]
	entries   *Collection[Entry]
	staff     *Collection[StaffMember]

	dueSoonDays int
	loc         *time.Location
	now         func() time.Time
	logger      *slog.Logger

	entriesCreated prometheus.Counter
	entryValue     prometheus.Histogram
}

func NewService(cfg ServiceConfig) *Service {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Service{
		customers:   NewCollection[Customer](cfg.Store, cfg.KeyPrefix, CollectionCustomers),
		clothes:     NewCollection[Cloth](cfg.Store, cfg.KeyPrefix, CollectionClothes),
		entries:     NewCollection[Entry](cfg.Store, cfg.KeyPrefix, CollectionEntries),
		staff:       NewCollection[StaffMember](cfg.Store, cfg.KeyPrefix, CollectionStaff),
		dueSoonDays: cfg.DueSoonDays,
		loc:         cfg.Location,
		now:         time.Now,
		logger:      cfg.Logger,
		entriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "drycleaning",
			Subsystem: "ledger",
			Name:      "entries_created_total",
			Help:      "Ledger entries created.",
		}),
		entryValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "drycleaning",
			Subsystem: "ledger",
			Name:      "entry_price",
			Help:      "Price of created ledger entries.",
			Buckets:   prometheus.ExponentialBuckets(50, 2, 10),
		}),
	}
}

func (s *Service) Collectors() []prometheus.Collector {
	return []prometheus.Collector{s.entriesCreated, s.entryValue}
}

// customers

func (s *Service) ListCustomers(ctx context.Context) ([]Customer, error) {
	return s.customers.List(ctx)
}

func (s *Service) GetCustomer(ctx context.Context, id string) (Customer, error) {
	return s.customers.Get(ctx, id)
}

func (s *Service) CreateCustomer(
	ctx context.Context,
	req CustomerRequest,
) (Customer, error) {
	c := Customer{ID: newID()}
	applyCustomer(&c, req)

	if err := s.customers.Insert(ctx, c); err != nil {
		return Customer{}, err
	}
	return c, nil
}

// UpdateCustomer rewrites the customer record only. Entries keep the name
// they were created with.
func (s *Service) UpdateCustomer(
	ctx context.Context,
	id string,
	req CustomerRequest,
) (Customer, error) {
	return s.customers.Modify(ctx, id, func(c *Customer) error {
		applyCustomer(c, req)
		return nil
	})
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}

func (s *Service) CustomerStats(
	ctx context.Context,
	id string,
) (CustomerStats, error) {
	history, err := s.CustomerHistory(ctx, id)
	if err != nil {
		return CustomerStats{}, err
	}
	return history.Stats, nil
}

func (s *Service) CustomerHistory(
	ctx context.Context,
	id string,
) (CustomerHistoryResponse, error) {
	customer, err := s.customers.Get(ctx, id)
	if err != nil {
		return CustomerHistoryResponse{}, err
	}

	entries, err := s.entries.List(ctx)
	if err != nil {
		return CustomerHistoryResponse{}, err
	}

	return CustomerHistoryResponse{
		Customer: customer,
		Stats:    ComputeCustomerStats(entries, customer.Name),
		Entries:  EntriesFor(entries, customer.Name),
	}, nil
}

func applyCustomer(c *Customer, req CustomerRequest) {
	c.Name = strings.TrimSpace(req.Name)
	c.Phone = strings.TrimSpace(req.Phone)
	c.Email = strings.TrimSpace(req.Email)
	c.Address = strings.TrimSpace(req.Address)
}

// clothes

func (s *Service) ListClothes(ctx context.Context) ([]Cloth, error) {
	return s.clothes.List(ctx)
}

func (s *Service) GetCloth(ctx context.Context, id string) (Cloth, error) {
	return s.clothes.Get(ctx, id)
}

func (s *Service) CreateCloth(ctx context.Context, req ClothRequest) (Cloth, error) {
	c := Cloth{
		ID:    newID(),
		Name:  strings.TrimSpace(req.Name),
		Price: roundMoney(*req.Price),
	}

	if err := s.clothes.Insert(ctx, c); err != nil {
		return Cloth{}, err
	}
	return c, nil
}

// UpdateCloth changes the price list only. Existing entries keep the
// prices snapshotted when they were created.
func (s *Service) UpdateCloth(
	ctx context.Context,
	id string,
	req ClothRequest,
) (Cloth, error) {
	return s.clothes.Modify(ctx, id, func(c *Cloth) error {
		c.Name = strings.TrimSpace(req.Name)
		c.Price = roundMoney(*req.Price)
		return nil
	})
}

func (s *Service) DeleteCloth(ctx context.Context, id string) error {
	return s.clothes.Delete(ctx, id)
}

// staff

func (s *Service) ListStaff(ctx context.Context) ([]StaffMember, error) {
	return s.staff.List(ctx)
}

func (s *Service) GetStaff(ctx context.Context, id string) (StaffMember, error) {
	return s.staff.Get(ctx, id)
}

func (s *Service) CreateStaff(
	ctx context.Context,
	req StaffRequest,
) (StaffMember, error) {
	m := StaffMember{
		ID:          newID(),
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Permissions: req.Permissions,
	}

	if err := s.staff.Insert(ctx, m); err != nil {
		return StaffMember{}, err
	}
	return m, nil
}

func (s *Service) UpdateStaff(
	ctx context.Context,
	id string,
	req StaffRequest,
) (StaffMember, error) {
	return s.staff.Modify(ctx, id, func(m *StaffMember) error {
		m.Name = strings.TrimSpace(req.Name)
		m.Email = strings.ToLower(strings.TrimSpace(req.Email))
		m.Permissions = req.Permissions
		return nil
	})
}

func (s *Service) DeleteStaff(ctx context.Context, id string) error {
	return s.staff.Delete(ctx, id)
}

// entries

func (s *Service) ListEntries(
	ctx context.Context,
	params ListEntriesParams,
) ([]Entry, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterEntries(entries, params.Status, params.Search), nil
}

func (s *Service) GetEntry(ctx context.Context, id string) (Entry, error) {
	return s.entries.Get(ctx, id)
}

// CreateEntry prices every line from the current price list. The entry
// price is the override when one above zero is given, else the line sum.
func (s *Service) CreateEntry(
	ctx context.Context,
	req CreateEntryRequest,
) (Entry, error) {
	if req.CustomerID != "" {
		_, err := s.customers.Get(ctx, req.CustomerID)
		if errors.Is(err, core.ErrNotFound) {
			return Entry{}, fmt.Errorf("%w %q", ErrUnknownCustomer, req.CustomerID)
		}
		if err != nil {
			return Entry{}, err
		}
	}

	clothes, err := s.clothes.List(ctx)
	if err != nil {
		return Entry{}, err
	}

	items, total, err := priceItems(req.Items, clothes)
	if err != nil {
		return Entry{}, err
	}

	price := total
	if req.Price != nil && *req.Price > 0 {
		price = roundMoney(*req.Price)
	}

	entry := Entry{
		ID:           newID(),
		CustomerID:   req.CustomerID,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Items:        items,
		DueDate:      req.DueDate,
		IsPaid:       req.IsPaid,
		Price:        price,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.entries.Insert(ctx, entry); err != nil {
		return Entry{}, err
	}

	s.entriesCreated.Inc()
	s.entryValue.Observe(entry.Price)
	s.logger.InfoContext(ctx, "ledger entry created",
		"entry_id", entry.ID,
		"items", len(entry.Items),
	)

	return entry, nil
}

func priceItems(
	requested []EntryItemRequest,
	clothes []Cloth,
) ([]LineItem, float64, error) {
	byID := make(map[string]Cloth, len(clothes))
	for _, c := range clothes {
		byID[c.ID] = c
	}

	items := make([]LineItem, 0, len(requested))
	var total float64
	for _, r := range requested {
		cloth, ok := byID[r.ClothID]
		if !ok {
			return nil, 0, fmt.Errorf("%w %q", ErrUnknownCloth, r.ClothID)
		}

		line := roundMoney(cloth.Price * float64(r.Quantity))
		items = append(items, LineItem{
			ClothID:   cloth.ID,
			ClothName: cloth.Name,
			Quantity:  r.Quantity,
			Price:     line,
		})
		total += line
	}

	return items, roundMoney(total), nil
}

// SetPaid is the only mutation an entry accepts after creation.
func (s *Service) SetPaid(ctx context.Context, id string, paid bool) (Entry, error) {
	return s.entries.Modify(ctx, id, func(e *Entry) error {
		e.IsPaid = paid
		return nil
	})
}

func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	return s.entries.Delete(ctx, id)
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	window := NewDueWindow(s.now(), s.dueSoonDays, s.loc)
	return ComputeDashboard(entries, window), nil
}

func (s *Service) CollectionSizes(ctx context.Context) (map[string]int, error) {
	sizes := make(map[string]int, 4)

	counters := []struct {
		name string
		size func(context.Context) (int, error)
	}{
		{s.customers.Name(), s.customers.Len},
		{s.clothes.Name(), s.clothes.Len},
		{s.entries.Name(), s.entries.Len},
		{s.staff.Name(), s.staff.Len},
	}

	for _, c := range counters {
		n, err := c.size(ctx)
		if err != nil {
			return nil, err
		}
		sizes[c.name] = n
	}

	return sizes, nil
}

func newID() string {
	return uuid.New().String()
}
