// AngelaMos | 2026
// dto.go

package ledger

const (
	StatusAll    = "all"
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

type CustomerRequest struct {
	Name    string `json:"name"    validate:"required,notblank,max=255"`
	Phone   string `json:"phone"   validate:"omitempty,max=32"`
	Email   string `json:"email"   validate:"omitempty,email,max=255"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

type ClothRequest struct {
	Name  string   `json:"name"  validate:"required,notblank,max=255"`
	Price *float64 `json:"price" validate:"required,gte=0"`
}

type StaffRequest struct {
	Name        string      `json:"name"        validate:"required,notblank,max=255"`
	Email       string      `json:"email"       validate:"required,email,max=255"`
	Permissions Permissions `json:"permissions"`
}

type EntryItemRequest struct {
	ClothID  string `json:"clothId"  validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0,lte=10000"`
}

// CreateEntryRequest carries no line prices. They are always derived from
// the price list at creation time.
type CreateEntryRequest struct {
	CustomerName string             `json:"customerName" validate:"required,notblank,max=255"`
	CustomerID   string             `json:"customerId"   validate:"omitempty,max=64"`
	Items        []EntryItemRequest `json:"items"        validate:"required,min=1,dive"`
	DueDate      string             `json:"dueDate"      validate:"required,datetime=2006-01-02"`
	IsPaid       bool               `json:"isPaid"`
	Price        *float64           `json:"price"        validate:"omitempty,gte=0"`
}

type SetPaidRequest struct {
	IsPaid *bool `json:"isPaid" validate:"required"`
}

type ListEntriesParams struct {
	Status string `json:"status" validate:"omitempty,oneof=all paid unpaid"`
	Search string `json:"search" validate:"max=255"`
}

type CustomerHistoryResponse struct {
	Customer Customer      `json:"customer"`
	Stats    CustomerStats `json:"stats"`
	Entries  []Entry       `json:"entries"`
}
