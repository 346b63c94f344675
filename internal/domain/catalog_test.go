package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductIndexResolve(t *testing.T) {
	index := NewProductIndex([]Product{
		{SKU: "A", Name: "Widget"},
		{SKU: "B", Name: "Gadget"},
	})

	tests := []struct {
		name string
		sku  string
		want string
	}{
		{name: "Known sku", sku: "A", want: "Widget"},
		{name: "Unknown sku falls back", sku: "Z", want: "Product Z"},
		{name: "Empty sku falls back", sku: "", want: "Product "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, index.Resolve(tt.sku))
		})
	}
}

func TestProductIndexDuplicateSkuLastWins(t *testing.T) {
	index := NewProductIndex([]Product{
		{SKU: "A", Name: "Old"},
		{SKU: "A", Name: "New"},
	})

	assert.Equal(t, "New", index.Resolve("A"))
	assert.Equal(t, 1, index.Len())
}

func TestProductIndexEmptyAndNil(t *testing.T) {
	empty := NewProductIndex(nil)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, "Product X", empty.Resolve("X"))
	assert.Empty(t, empty.Products())

	var missing *ProductIndex
	assert.Equal(t, 0, missing.Len())
	assert.Equal(t, "Product X", missing.Resolve("X"))
	assert.NotNil(t, missing.Products())
}

func TestProductIndexProductsSorted(t *testing.T) {
	index := NewProductIndex([]Product{
		{SKU: "C", Name: "Third"},
		{SKU: "A", Name: "First"},
		{SKU: "B", Name: "Second"},
	})

	assert.Equal(t, []Product{
		{SKU: "A", Name: "First"},
		{SKU: "B", Name: "Second"},
		{SKU: "C", Name: "Third"},
	}, index.Products())
}
