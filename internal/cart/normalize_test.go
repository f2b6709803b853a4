package cart_test

import (
	"encoding/json"
	"testing"

	"github.com/aaravmahajanofficial/rental-checkout/internal/cart"
	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeItem(t *testing.T) {
	tests := []struct {
		name string
		raw  models.CatalogItem
		want cart.NormalizedItem
		ok   bool
	}{
		{
			name: "Success - Canonical Fields",
			raw: models.CatalogItem{
				"id": "tent-1", "name": "Tent", "description": "10x10 frame tent",
				"image": "tent.jpg", "category": "Shelter", "price": 100.0,
			},
			want: cart.NormalizedItem{ID: "tent-1", Name: "Tent", Description: "10x10 frame tent", Image: "tent.jpg", Category: "Shelter", Price: 100},
			ok:   true,
		},
		{
			name: "Success - Aliases",
			raw: models.CatalogItem{
				"_id": "chair-7", "itemName": "Chair", "itemDescription": "White resin",
				"imageUrl": "chair.jpg", "categoryName": "Seating", "itemPrice": "4.50",
			},
			want: cart.NormalizedItem{ID: "chair-7", Name: "Chair", Description: "White resin", Image: "chair.jpg", Category: "Seating", Price: 4.5},
			ok:   true,
		},
		{
			name: "Success - First Present Alias Wins",
			raw: models.CatalogItem{
				"name": "Primary", "itemName": "Secondary", "title": "Third",
				"price": 10, "rate": 99,
			},
			want: cart.NormalizedItem{Name: "Primary", Price: 10},
			ok:   true,
		},
		{
			name: "Success - Empty Alias Falls Through",
			raw:  models.CatalogItem{"name": "", "title": "Lights", "rate": json.Number("12.25"), "productId": 42.0},
			want: cart.NormalizedItem{ID: "42", Name: "Lights", Price: 12.25},
			ok:   true,
		},
		{
			name: "Success - Images Array",
			raw:  models.CatalogItem{"name": "Arch", "price": 0, "images": []any{"arch-1.jpg", "arch-2.jpg"}},
			want: cart.NormalizedItem{Name: "Arch", Image: "arch-1.jpg", Price: 0},
			ok:   true,
		},
		{
			name: "Success - Markup Stripped",
			raw:  models.CatalogItem{"name": "<b>Tent</b> & Poles", "description": "<img src=x onerror=alert(1)>Sturdy", "price": 1},
			want: cart.NormalizedItem{Name: "Tent & Poles", Description: "Sturdy", Price: 1},
			ok:   true,
		},
		{
			name: "Failure - No Name",
			raw:  models.CatalogItem{"id": "x", "price": 10},
			ok:   false,
		},
		{
			name: "Failure - No Price",
			raw:  models.CatalogItem{"id": "x", "name": "Tent"},
			ok:   false,
		},
		{
			name: "Failure - Negative Price",
			raw:  models.CatalogItem{"name": "Tent", "price": -1.0},
			ok:   false,
		},
		{
			name: "Failure - Present Price Does Not Fall Through",
			raw:  models.CatalogItem{"name": "Tent", "price": "call us", "rate": 10},
			ok:   false,
		},
		{
			name: "Failure - Unsupported Price Type",
			raw:  models.CatalogItem{"name": "Tent", "price": true},
			ok:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			got, ok := cart.NormalizeItem(tc.raw)

			// Assert
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
