// internal/domain/theme/patch.go
package theme

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PatchOp selects which part of a theme a Patch edits
type PatchOp string

const (
	PatchColor         PatchOp = "color"
	PatchEmoji         PatchOp = "emoji"
	PatchCardText      PatchOp = "card_text"
	PatchCardBadge     PatchOp = "card_badge"
	PatchCardButton    PatchOp = "card_button"
	PatchCardContainer PatchOp = "card_container"
	PatchBackground    PatchOp = "background"
)

// Patch sets one field of a theme. Slot picks the text field, badge or button
// state for the card ops and is unused otherwise.
//
//	{Op: PatchCardText, Slot: "price", Field: "color", Value: "#ff0000"}
type Patch struct {
	Op    PatchOp `json:"op" binding:"required"`
	Slot  string  `json:"slot,omitempty"`
	Field string  `json:"field" binding:"required"`
	Value string  `json:"value"`
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidPatch, format, args...)
}

// Apply writes the patch into t, allocating missing sub-objects
func (p Patch) Apply(t *ThemeConfig) error {
	switch p.Op {
	case PatchColor:
		if t.Colors == nil {
			t.Colors = &Palette{}
		}
		return setString(t.Colors.field(p.Field), p)
	case PatchEmoji:
		if t.Emojis == nil {
			t.Emojis = &EmojiSet{}
		}
		return setString(t.Emojis.field(p.Field), p)
	case PatchCardText:
		s, ok := productCard(t).text(p.Slot)
		if !ok {
			return invalid("unknown text slot %q", p.Slot)
		}
		return setString(s.field(p.Field), p)
	case PatchCardBadge:
		s, ok := productCard(t).badge(p.Slot)
		if !ok {
			return invalid("unknown badge slot %q", p.Slot)
		}
		return setString(s.field(p.Field), p)
	case PatchCardButton:
		s, ok := productCard(t).button(p.Slot)
		if !ok {
			return invalid("unknown button state %q", p.Slot)
		}
		return setString(s.field(p.Field), p)
	case PatchCardContainer:
		card := productCard(t)
		if card.Container == nil {
			card.Container = &ContainerStyle{}
		}
		return setString(card.Container.field(p.Field), p)
	case PatchBackground:
		return p.applyBackground(t)
	default:
		return invalid("unknown op %q", p.Op)
	}
}

// ApplyPatches applies every patch to a copy of t. t is untouched when any patch fails.
func ApplyPatches(t *ThemeConfig, patches []Patch) (*ThemeConfig, error) {
	out := t.Clone()
	for i, p := range patches {
		if err := p.Apply(out); err != nil {
			return nil, errors.WithMessagef(err, "patch %d", i)
		}
	}
	return out, nil
}

func setString(dst *string, p Patch) error {
	if dst == nil {
		return invalid("unknown field %q for %s", p.Field, p.Op)
	}
	value := strings.TrimSpace(p.Value)
	if value == "" {
		return invalid("empty value for %s.%s", p.Op, p.Field)
	}
	*dst = value
	return nil
}

func (p Patch) applyBackground(t *ThemeConfig) error {
	if t.BackgroundImage == nil {
		t.BackgroundImage = &BackgroundImage{}
	}
	bg := t.BackgroundImage

	switch p.Field {
	case "url":
		// an empty url removes the image
		bg.URL = strings.TrimSpace(p.Value)
		return nil
	case "overlay_color":
		return setString(&bg.OverlayColor, p)
	case "overlay_opacity":
		v, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
		if err != nil || v < 0 || v > 1 {
			return invalid("overlay_opacity must be between 0 and 1, got %q", p.Value)
		}
		bg.OverlayOpacity = &v
		return nil
	default:
		return invalid("unknown field %q for %s", p.Field, p.Op)
	}
}

func productCard(t *ThemeConfig) *ProductCardStyles {
	if t.ComponentStyles == nil {
		t.ComponentStyles = &ComponentStyles{}
	}
	if t.ComponentStyles.ProductCard == nil {
		t.ComponentStyles.ProductCard = &ProductCardStyles{}
	}
	return t.ComponentStyles.ProductCard
}

func (p *Palette) field(name string) *string {
	switch name {
	case "primary":
		return &p.Primary
	case "secondary":
		return &p.Secondary
	case "accent":
		return &p.Accent
	case "background":
		return &p.Background
	case "text":
		return &p.Text
	case "card_background":
		return &p.CardBackground
	case "success":
		return &p.Success
	case "warning":
		return &p.Warning
	case "error":
		return &p.Error
	}
	return nil
}

func (e *EmojiSet) field(name string) *string {
	switch name {
	case "cart":
		return &e.Cart
	case "search":
		return &e.Search
	case "filter":
		return &e.Filter
	case "stock":
		return &e.Stock
	case "category":
		return &e.Category
	case "success":
		return &e.Success
	}
	return nil
}

func (c *ProductCardStyles) text(slot string) (*TextStyle, bool) {
	if c.Text == nil {
		c.Text = &CardText{}
	}
	var s **TextStyle
	switch slot {
	case "name":
		s = &c.Text.Name
	case "price":
		s = &c.Text.Price
	case "sale_price":
		s = &c.Text.SalePrice
	case "original_price":
		s = &c.Text.OriginalPrice
	case "stock":
		s = &c.Text.Stock
	case "category":
		s = &c.Text.Category
	default:
		return nil, false
	}
	if *s == nil {
		*s = &TextStyle{}
	}
	return *s, true
}

func (c *ProductCardStyles) badge(slot string) (*BadgeStyle, bool) {
	if c.Badges == nil {
		c.Badges = &CardBadges{}
	}
	var s **BadgeStyle
	switch slot {
	case "sale":
		s = &c.Badges.Sale
	case "new":
		s = &c.Badges.New
	case "low_stock":
		s = &c.Badges.LowStock
	case "sold_out":
		s = &c.Badges.SoldOut
	default:
		return nil, false
	}
	if *s == nil {
		*s = &BadgeStyle{}
	}
	return *s, true
}

func (c *ProductCardStyles) button(state string) (*ButtonStyle, bool) {
	if c.Button == nil {
		c.Button = &ButtonStates{}
	}
	var s **ButtonStyle
	switch state {
	case "default":
		s = &c.Button.Default
	case "hover":
		s = &c.Button.Hover
	case "disabled":
		s = &c.Button.Disabled
	default:
		return nil, false
	}
	if *s == nil {
		*s = &ButtonStyle{}
	}
	return *s, true
}

func (s *TextStyle) field(name string) *string {
	switch name {
	case "color":
		return &s.Color
	case "font_size":
		return &s.FontSize
	case "font_weight":
		return &s.FontWeight
	}
	return nil
}

func (s *BadgeStyle) field(name string) *string {
	switch name {
	case "background":
		return &s.Background
	case "color":
		return &s.Color
	case "border_radius":
		return &s.BorderRadius
	}
	return nil
}

func (s *ButtonStyle) field(name string) *string {
	switch name {
	case "background":
		return &s.Background
	case "color":
		return &s.Color
	case "border":
		return &s.Border
	}
	return nil
}

func (s *ContainerStyle) field(name string) *string {
	switch name {
	case "background":
		return &s.Background
	case "border_color":
		return &s.BorderColor
	case "border_radius":
		return &s.BorderRadius
	case "shadow":
		return &s.Shadow
	}
	return nil
}
