package cart

import (
	"encoding/json"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

var (
	idKeys          = []string{"id", "_id", "itemId", "productId"}
	nameKeys        = []string{"name", "itemName", "title"}
	descriptionKeys = []string{"description", "itemDescription", "desc"}
	imageKeys       = []string{"image", "imageUrl", "imageURL", "img", "thumbnail"}
	categoryKeys    = []string{"category", "categoryName", "type"}
	priceKeys       = []string{"price", "itemPrice", "rate"}
)

var textPolicy = bluemonday.StrictPolicy()

// NormalizedItem is a catalog item reduced to the fields a cart line copies.
type NormalizedItem struct {
	ID          string
	Name        string
	Description string
	Image       string
	Category    string
	Price       float64
}

// NormalizeItem maps a catalog item of any known shape onto NormalizedItem.
// For every field the first alias present wins. ok is false when the item has
// no usable name or price.
func NormalizeItem(raw models.CatalogItem) (NormalizedItem, bool) {
	item := NormalizedItem{
		ID:          firstString(raw, idKeys),
		Name:        sanitize(firstString(raw, nameKeys)),
		Description: sanitize(firstString(raw, descriptionKeys)),
		Image:       firstString(raw, imageKeys),
		Category:    sanitize(firstString(raw, categoryKeys)),
	}

	if item.Image == "" {
		item.Image = firstImage(raw["images"])
	}

	price, ok := firstPrice(raw)
	if !ok || item.Name == "" {
		return NormalizedItem{}, false
	}

	item.Price = price

	return item, true
}

func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func firstString(raw models.CatalogItem, keys []string) string {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}

		if s := stringValue(value); s != "" {
			return s
		}
	}

	return ""
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func firstImage(value any) string {
	switch images := value.(type) {
	case []any:
		if len(images) > 0 {
			return stringValue(images[0])
		}
	case []string:
		if len(images) > 0 {
			return strings.TrimSpace(images[0])
		}
	}

	return ""
}

// firstPrice takes the first alias that is present and parses it. A present
// but unusable price does not fall through to later aliases.
func firstPrice(raw models.CatalogItem) (float64, bool) {
	for _, key := range priceKeys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}

		price, err := parsePrice(value)
		if err != nil || price < 0 {
			return 0, false
		}

		return price, true
	}

	return 0, false
}

func parsePrice(value any) (float64, error) {
	var price float64

	switch v := value.(type) {
	case float64:
		price = v
	case float32:
		price = float64(v)
	case int:
		price = float64(v)
	case int64:
		price = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, err
		}
		price = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, err
		}
		price = f
	default:
		return 0, fmt.Errorf("unsupported price type %T", value)
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("price is not a finite number")
	}

	return price, nil
}
