package invoicing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wms-platform/delivery-planner/internal/domain"
)

const (
	productsPath = "/api/v1/getAllProducts"
	ordersPath   = "/api/v1/getOpenInvoices"

	// salesOrderDocType is the provider's document type for open sales orders
	salesOrderDocType = 2
	allCustomers      = -1
)

// envelope wraps every provider response
type envelope[T any] struct {
	Success      bool   `json:"Success"`
	ErrorMessage string `json:"ErrorMessage"`
	ReturnValue  []T    `json:"ReturnValue"`
}

type credentials struct {
	Secret  string `json:"secret"`
	UserKey string `json:"userkey"`
}

type productsRequest struct {
	PageSize   int `json:"PageSize"`
	PageNumber int `json:"PageNumber"`
}

type ordersRequest struct {
	CustomerID int    `json:"CustomerID"`
	PageSize   int    `json:"PageSize"`
	PageNumber int    `json:"PageNumber"`
	DocTypeID  int    `json:"docTypeID"`
	From       string `json:"from"`
	To         string `json:"to"`
}

type productRecord struct {
	SKU  flexibleString `json:"sku"`
	Name string         `json:"name"`
}

type orderRecord struct {
	ID             flexibleString `json:"ID"`
	DocumentNumber flexibleString `json:"DocumentNumber"`
	Date           string         `json:"Date"`
	CustomerName   string         `json:"CustomerName"`
	Items          []itemRecord   `json:"items"`
}

type itemRecord struct {
	SKU      flexibleString      `json:"sku"`
	Quantity decimal.NullDecimal `json:"quantity"`
	Price    decimal.NullDecimal `json:"price"`
}

// flexibleString accepts a JSON string or number. The provider is not consistent about ids.
type flexibleString string

func (f *flexibleString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*f = ""
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = flexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(trimmed))
	}
	*f = flexibleString(n.String())
	return nil
}

func (p productRecord) toDomain() domain.Product {
	return domain.Product{
		SKU:  strings.TrimSpace(string(p.SKU)),
		Name: p.Name,
	}
}

// toDomain maps the record and reports how many negative quantities or prices were clamped to zero
func (o orderRecord) toDomain() (domain.Order, int) {
	clamped := 0
	items := make([]domain.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		quantity, qClamped := nonNegative(it.Quantity)
		price, pClamped := nonNegative(it.Price)
		if qClamped {
			clamped++
		}
		if pClamped {
			clamped++
		}
		items = append(items, domain.OrderItem{
			SKU:       strings.TrimSpace(string(it.SKU)),
			Quantity:  quantity,
			UnitPrice: price,
		})
	}

	return domain.Order{
		ID:             string(o.ID),
		DocumentNumber: string(o.DocumentNumber),
		Date:           o.Date,
		CustomerName:   o.CustomerName,
		Items:          items,
	}, clamped
}

func valueOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func nonNegative(d decimal.NullDecimal) (decimal.Decimal, bool) {
	v := valueOrZero(d)
	if v.IsNegative() {
		return decimal.Zero, true
	}
	return v, false
}
