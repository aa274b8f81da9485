package importers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// Document is the canonical import schema. Orders embed their customer,
// items and optional payment; a top-level customers list is also accepted.
type Document struct {
	Authors   []AuthorRecord   `json:"authors"`
	Books     []BookRecord     `json:"books"`
	Customers []CustomerRecord `json:"customers"`
	Orders    []OrderRecord    `json:"orders"`
}

// Key fields and counts accept both JSON strings and JSON numbers.

// FlexString is a key that may be written as "101" or 101.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = FlexString(n.String())
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

// FlexInt is a whole number that may be written as 3, 3.0 or "3".
// A blank string decodes as zero.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			*n = 0
			return nil
		}
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return fmt.Errorf("expected integer, got %s", data)
	}
	if !d.IsInteger() {
		return fmt.Errorf("expected integer, got %s", data)
	}
	*n = FlexInt(d.IntPart())
	return nil
}

func (n FlexInt) Int() int {
	return int(n)
}

type AuthorRecord struct {
	ID      FlexString `json:"id" validate:"notblank"`
	Name    string     `json:"name" validate:"notblank"`
	Country string     `json:"country"`
}

type BookRecord struct {
	ISBN       FlexString      `json:"isbn" validate:"notblank"`
	Title      string          `json:"title" validate:"notblank"`
	AuthorID   FlexString      `json:"authorId"`
	Price      decimal.Decimal `json:"price"`
	Stock      FlexInt         `json:"stock"`
	Categories []string        `json:"categories"`
}

// Category joins the category tags the way they are displayed.
func (b BookRecord) Category() string {
	return strings.Join(b.Categories, ", ")
}

type CustomerRecord struct {
	ID    FlexString `json:"id" validate:"notblank"`
	Name  string     `json:"name" validate:"notblank"`
	Email string     `json:"email"`
}

type OrderRecord struct {
	ID         FlexString      `json:"id" validate:"notblank"`
	CustomerID FlexString      `json:"customerId"`
	Customer   *CustomerRecord `json:"customer" validate:"-"`
	Date       string          `json:"date"`
	Status     string          `json:"status"`
	Items      []ItemRecord    `json:"items" validate:"-"`
	Payment    *PaymentRecord  `json:"payment" validate:"-"`
}

// CustomerRef is the explicit customerId when set, otherwise the embedded
// customer's id.
func (o OrderRecord) CustomerRef() string {
	if strings.TrimSpace(o.CustomerID.String()) != "" {
		return o.CustomerID.String()
	}
	if o.Customer != nil {
		return o.Customer.ID.String()
	}
	return ""
}

type ItemRecord struct {
	ISBN      FlexString      `json:"isbn" validate:"notblank"`
	Qty       FlexInt         `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
}

type PaymentRecord struct {
	ID       FlexString       `json:"id"`
	Method   string           `json:"method"`
	Amount   *decimal.Decimal `json:"amount"` // nil means recompute from the order's items
	Captured *bool            `json:"captured"`
}

// Decode parses a raw source document.
func Decode(raw []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedDocument)
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &doc, nil
}

// newValidator returns a validator with the notblank rule registered.
func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// idOrNull renders a record key for the rejection log.
func idOrNull(id FlexString) string {
	if strings.TrimSpace(id.String()) == "" {
		return "null"
	}
	return id.String()
}
