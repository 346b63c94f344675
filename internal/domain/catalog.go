package domain

import "sort"

// FallbackProductPrefix prefixes the label synthesized for skus missing from the catalog
const FallbackProductPrefix = "Product "

// Product is a catalog entry from the invoicing provider
type Product struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// ProductIndex maps sku to display name. It is built once and never mutated.
type ProductIndex struct {
	names map[string]string
}

// NewProductIndex folds the product list into an index. Duplicate skus resolve last-write-wins.
func NewProductIndex(products []Product) *ProductIndex {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.SKU] = p.Name
	}
	return &ProductIndex{names: names}
}

// Resolve returns the product name for a sku, or a synthesized label when the sku is unknown.
// A nil index resolves everything to the fallback label.
func (idx *ProductIndex) Resolve(sku string) string {
	if idx != nil {
		if name, ok := idx.names[sku]; ok {
			return name
		}
	}
	return FallbackProductPrefix + sku
}

// Len returns the number of distinct skus in the index
func (idx *ProductIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.names)
}

// Products returns the catalog sorted by sku
func (idx *ProductIndex) Products() []Product {
	if idx == nil {
		return []Product{}
	}
	products := make([]Product, 0, len(idx.names))
	for sku, name := range idx.names {
		products = append(products, Product{SKU: sku, Name: name})
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].SKU < products[j].SKU
	})
	return products
}
