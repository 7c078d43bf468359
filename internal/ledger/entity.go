// AngelaMos | 2026
// entity.go

package ledger

import (
	"time"
)

const (
	CollectionCustomers = "customers"
	CollectionClothes   = "clothes"
	CollectionEntries   = "entries"
	CollectionStaff     = "staff"
)

// DateLayout is the wire and storage form of an entry due date.
const DateLayout = time.DateOnly

// Record is anything kept in a collection document.
type Record interface {
	RecordID() string
}

type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

func (c Customer) RecordID() string { return c.ID }

// Cloth is one line of the price list.
type Cloth struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (c Cloth) RecordID() string { return c.ID }

// LineItem snapshots the cloth name and line subtotal at order time.
type LineItem struct {
	ClothID   string  `json:"clothId"`
	ClothName string  `json:"clothName"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Entry is a customer order. CustomerName is a copy, not a reference:
// renaming the customer later leaves existing entries untouched.
type Entry struct {
	ID           string     `json:"id"`
	CustomerID   string     `json:"customerId,omitempty"`
	CustomerName string     `json:"customerName"`
	Items        []LineItem `json:"items"`
	DueDate      string     `json:"dueDate"`
	IsPaid       bool       `json:"isPaid"`
	Price        float64    `json:"price"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (e Entry) RecordID() string { return e.ID }

type Permissions struct {
	Read        bool `json:"read"`
	Write       bool `json:"write"`
	ManageUsers bool `json:"manageUsers"`
}

// StaffMember is the shop's roster entry. It is independent of login
// accounts and never holds a password.
type StaffMember struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Permissions Permissions `json:"permissions"`
}

func (s StaffMember) RecordID() string { return s.ID }
