// internal/domain/theme/entity.go
package theme

import (
	"encoding/json"
	"time"
)

// Palette is the color set of a theme
type Palette struct {
	Primary        string `json:"primary,omitempty"`
	Secondary      string `json:"secondary,omitempty"`
	Accent         string `json:"accent,omitempty"`
	Background     string `json:"background,omitempty"`
	Text           string `json:"text,omitempty"`
	CardBackground string `json:"card_background,omitempty"`
	Success        string `json:"success,omitempty"`
	Warning        string `json:"warning,omitempty"`
	Error          string `json:"error,omitempty"`
}

// EmojiSet holds the icons shown next to storefront controls
type EmojiSet struct {
	Cart     string `json:"cart,omitempty"`
	Search   string `json:"search,omitempty"`
	Filter   string `json:"filter,omitempty"`
	Stock    string `json:"stock,omitempty"`
	Category string `json:"category,omitempty"`
	Success  string `json:"success,omitempty"`
}

// TextStyle styles one text field of a product card
type TextStyle struct {
	Color      string `json:"color,omitempty"`
	FontSize   string `json:"font_size,omitempty"`
	FontWeight string `json:"font_weight,omitempty"`
}

// CardText has one style per product card text field
type CardText struct {
	Name          *TextStyle `json:"name,omitempty"`
	Price         *TextStyle `json:"price,omitempty"`
	SalePrice     *TextStyle `json:"sale_price,omitempty"`
	OriginalPrice *TextStyle `json:"original_price,omitempty"`
	Stock         *TextStyle `json:"stock,omitempty"`
	Category      *TextStyle `json:"category,omitempty"`
}

// BadgeStyle styles one product card badge
type BadgeStyle struct {
	Background   string `json:"background,omitempty"`
	Color        string `json:"color,omitempty"`
	BorderRadius string `json:"border_radius,omitempty"`
}

// CardBadges has one style per badge
type CardBadges struct {
	Sale     *BadgeStyle `json:"sale,omitempty"`
	New      *BadgeStyle `json:"new,omitempty"`
	LowStock *BadgeStyle `json:"low_stock,omitempty"`
	SoldOut  *BadgeStyle `json:"sold_out,omitempty"`
}

// ButtonStyle styles the add-to-cart button in one state
type ButtonStyle struct {
	Background string `json:"background,omitempty"`
	Color      string `json:"color,omitempty"`
	Border     string `json:"border,omitempty"`
}

// ButtonStates has one style per button state
type ButtonStates struct {
	Default  *ButtonStyle `json:"default,omitempty"`
	Hover    *ButtonStyle `json:"hover,omitempty"`
	Disabled *ButtonStyle `json:"disabled,omitempty"`
}

// ContainerStyle styles the card itself
type ContainerStyle struct {
	Background   string `json:"background,omitempty"`
	BorderColor  string `json:"border_color,omitempty"`
	BorderRadius string `json:"border_radius,omitempty"`
	Shadow       string `json:"shadow,omitempty"`
}

// ProductCardStyles groups every product card style
type ProductCardStyles struct {
	Text      *CardText       `json:"text,omitempty"`
	Badges    *CardBadges     `json:"badges,omitempty"`
	Button    *ButtonStates   `json:"button,omitempty"`
	Container *ContainerStyle `json:"container,omitempty"`
}

// ComponentStyles holds per-component overrides
type ComponentStyles struct {
	ProductCard *ProductCardStyles `json:"product_card,omitempty"`
}

// BackgroundImage is the page background of a theme
type BackgroundImage struct {
	URL            string   `json:"url,omitempty"`
	OverlayColor   string   `json:"overlay_color,omitempty"`
	OverlayOpacity *float64 `json:"overlay_opacity,omitempty"`
}

// ThemeConfig is a stored theme. Sub-objects are optional; missing ones are
// filled from the emergency theme at resolution time.
type ThemeConfig struct {
	ID              string           `gorm:"primaryKey;size:64" json:"id"`
	Name            string           `gorm:"not null;size:100" json:"name"`
	IsActive        bool             `gorm:"default:false;index" json:"is_active"`
	Priority        int              `gorm:"default:0" json:"priority"`
	Colors          *Palette         `gorm:"type:jsonb;serializer:json" json:"colors,omitempty"`
	Emojis          *EmojiSet        `gorm:"type:jsonb;serializer:json" json:"emojis,omitempty"`
	ComponentStyles *ComponentStyles `gorm:"type:jsonb;serializer:json" json:"component_styles,omitempty"`
	BackgroundImage *BackgroundImage `gorm:"type:jsonb;serializer:json" json:"background_image,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TableName overrides the table name
func (ThemeConfig) TableName() string {
	return "themes"
}

// Clone returns a deep copy of the theme
func (t *ThemeConfig) Clone() *ThemeConfig {
	data, err := json.Marshal(t)
	if err != nil {
		// every field is a plain value, marshal cannot fail
		panic(err)
	}
	var out ThemeConfig
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}

// PageThemeAssignment binds a page to a theme. A missing row or a nil
// ThemeID means the page inherits the active theme.
type PageThemeAssignment struct {
	PageID    string    `gorm:"primaryKey;size:64" json:"page_id"`
	ThemeID   *string   `gorm:"size:64;index" json:"theme_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (PageThemeAssignment) TableName() string {
	return "page_theme_assignments"
}
