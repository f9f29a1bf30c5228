// internal/domain/catalog/entity.go
package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/your-org/collectibles-storefront/internal/pkg/textnorm"
)

// ProductID is a product identifier in canonical string form. The catalog
// source sends it either as a JSON number or a JSON string.
type ProductID string

// ParseProductID canonicalizes an identifier of any scalar type
func ParseProductID(v interface{}) ProductID {
	return ProductID(textnorm.CanonicalID(v))
}

// UnmarshalJSON accepts both 7 and "7"
func (id *ProductID) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*id = ParseProductID(raw)
	return nil
}

// Equal compares two ids by canonical form
func (id ProductID) Equal(other ProductID) bool {
	return textnorm.CanonicalID(string(id)) == textnorm.CanonicalID(string(other))
}

func (id ProductID) String() string {
	return string(id)
}

// Product is a catalog entry. Stock is the authoritative base quantity at the source.
type Product struct {
	ID            ProductID `gorm:"primaryKey;size:64" json:"id"`
	Name          string    `gorm:"not null;size:255" json:"name"`
	Price         int64     `gorm:"not null" json:"price"` // Price in cents
	SalePrice     *int64    `json:"sale_price,omitempty"`
	OriginalPrice *int64    `json:"original_price,omitempty"`
	OnSale        bool      `gorm:"default:false" json:"on_sale"`
	Stock         int       `gorm:"default:0" json:"stock"`
	Category      string    `gorm:"size:100;index" json:"category,omitempty"`
	Type          string    `gorm:"size:100" json:"type,omitempty"`
	Collection    string    `gorm:"size:150" json:"collection,omitempty"`
	Rarity        string    `gorm:"size:50" json:"rarity,omitempty"`
	Tags          string    `gorm:"size:500" json:"tags,omitempty"` // Comma-separated tags
	Description   string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL      string    `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// EffectivePrice is the price a shopper pays
func (p *Product) EffectivePrice() int64 {
	if p.OnSale && p.SalePrice != nil && *p.SalePrice > 0 {
		return *p.SalePrice
	}
	return p.Price
}

// IsInStock reports whether any unit is available
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// TagList splits the comma-separated tags
func (p *Product) TagList() []string {
	if p.Tags == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(p.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// WithStock returns a copy of the product carrying the given stock
func (p Product) WithStock(stock int) Product {
	p.Stock = stock
	return p
}
