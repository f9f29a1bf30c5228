// internal/domain/theme/defaults.go
package theme

// DefaultThemeID is the id of the stored theme that always exists
const DefaultThemeID = "default"

// EmergencyThemeID marks the in-memory theme served when nothing else resolves
const EmergencyThemeID = "emergency"

func opacity(v float64) *float64 {
	return &v
}

// EmergencyTheme returns a fresh copy of the hard-coded theme. Every field is set.
func EmergencyTheme() *ThemeConfig {
	return &ThemeConfig{
		ID:       EmergencyThemeID,
		Name:     "Emergency",
		IsActive: false,
		Colors: &Palette{
			Primary:        "#1e40af",
			Secondary:      "#64748b",
			Accent:         "#f59e0b",
			Background:     "#ffffff",
			Text:           "#111827",
			CardBackground: "#f9fafb",
			Success:        "#16a34a",
			Warning:        "#d97706",
			Error:          "#dc2626",
		},
		Emojis: &EmojiSet{
			Cart:     "🛒",
			Search:   "🔍",
			Filter:   "🎛️",
			Stock:    "📦",
			Category: "🏷️",
			Success:  "✅",
		},
		ComponentStyles: &ComponentStyles{
			ProductCard: &ProductCardStyles{
				Text: &CardText{
					Name:          &TextStyle{Color: "#111827", FontSize: "1rem", FontWeight: "600"},
					Price:         &TextStyle{Color: "#111827", FontSize: "1.125rem", FontWeight: "700"},
					SalePrice:     &TextStyle{Color: "#dc2626", FontSize: "1.125rem", FontWeight: "700"},
					OriginalPrice: &TextStyle{Color: "#6b7280", FontSize: "0.875rem", FontWeight: "400"},
					Stock:         &TextStyle{Color: "#16a34a", FontSize: "0.75rem", FontWeight: "500"},
					Category:      &TextStyle{Color: "#64748b", FontSize: "0.75rem", FontWeight: "500"},
				},
				Badges: &CardBadges{
					Sale:     &BadgeStyle{Background: "#dc2626", Color: "#ffffff", BorderRadius: "9999px"},
					New:      &BadgeStyle{Background: "#1e40af", Color: "#ffffff", BorderRadius: "9999px"},
					LowStock: &BadgeStyle{Background: "#d97706", Color: "#ffffff", BorderRadius: "9999px"},
					SoldOut:  &BadgeStyle{Background: "#6b7280", Color: "#ffffff", BorderRadius: "9999px"},
				},
				Button: &ButtonStates{
					Default:  &ButtonStyle{Background: "#1e40af", Color: "#ffffff", Border: "none"},
					Hover:    &ButtonStyle{Background: "#1e3a8a", Color: "#ffffff", Border: "none"},
					Disabled: &ButtonStyle{Background: "#d1d5db", Color: "#6b7280", Border: "none"},
				},
				Container: &ContainerStyle{
					Background:   "#ffffff",
					BorderColor:  "#e5e7eb",
					BorderRadius: "0.75rem",
					Shadow:       "0 1px 3px rgba(0,0,0,0.1)",
				},
			},
		},
		BackgroundImage: &BackgroundImage{
			URL:            "",
			OverlayColor:   "#000000",
			OverlayOpacity: opacity(0),
		},
	}
}

// DefaultTheme is the seeded record stored under DefaultThemeID
func DefaultTheme() *ThemeConfig {
	t := EmergencyTheme()
	t.ID = DefaultThemeID
	t.Name = "Default"
	t.IsActive = true
	return t
}

// SeasonalThemes are seeded inactive alongside the default theme
func SeasonalThemes() []*ThemeConfig {
	return []*ThemeConfig{
		{
			ID:       "halloween",
			Name:     "Halloween",
			Priority: 10,
			Colors: &Palette{
				Primary:        "#ea580c",
				Secondary:      "#581c87",
				Accent:         "#facc15",
				Background:     "#0f0f0f",
				Text:           "#f5f5f5",
				CardBackground: "#1c1917",
			},
			Emojis: &EmojiSet{
				Cart:     "🎃",
				Category: "🦇",
			},
			BackgroundImage: &BackgroundImage{
				URL:            "/images/themes/halloween.jpg",
				OverlayColor:   "#000000",
				OverlayOpacity: opacity(0.6),
			},
		},
		{
			ID:       "christmas",
			Name:     "Christmas",
			Priority: 10,
			Colors: &Palette{
				Primary: "#b91c1c",
				Accent:  "#15803d",
			},
			Emojis: &EmojiSet{
				Cart:    "🎁",
				Success: "🎄",
			},
		},
	}
}

// Complete returns a copy of t in which every missing sub-object and every
// empty field is taken from the emergency theme. t is not modified.
func Complete(t *ThemeConfig) *ThemeConfig {
	base := EmergencyTheme()
	if t == nil {
		return base
	}

	out := t.Clone()
	if out.Colors == nil {
		out.Colors = &Palette{}
	}
	fillPalette(out.Colors, base.Colors)

	if out.Emojis == nil {
		out.Emojis = &EmojiSet{}
	}
	fillEmojis(out.Emojis, base.Emojis)

	if out.ComponentStyles == nil {
		out.ComponentStyles = &ComponentStyles{}
	}
	if out.ComponentStyles.ProductCard == nil {
		out.ComponentStyles.ProductCard = &ProductCardStyles{}
	}
	fillProductCard(out.ComponentStyles.ProductCard, base.ComponentStyles.ProductCard)

	if out.BackgroundImage == nil {
		out.BackgroundImage = &BackgroundImage{}
	}
	fillBackground(out.BackgroundImage, base.BackgroundImage)

	return out
}

func fill(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}

func fillPalette(p, base *Palette) {
	fill(&p.Primary, base.Primary)
	fill(&p.Secondary, base.Secondary)
	fill(&p.Accent, base.Accent)
	fill(&p.Background, base.Background)
	fill(&p.Text, base.Text)
	fill(&p.CardBackground, base.CardBackground)
	fill(&p.Success, base.Success)
	fill(&p.Warning, base.Warning)
	fill(&p.Error, base.Error)
}

func fillEmojis(e, base *EmojiSet) {
	fill(&e.Cart, base.Cart)
	fill(&e.Search, base.Search)
	fill(&e.Filter, base.Filter)
	fill(&e.Stock, base.Stock)
	fill(&e.Category, base.Category)
	fill(&e.Success, base.Success)
}

func fillText(s **TextStyle, base *TextStyle) {
	if *s == nil {
		*s = &TextStyle{}
	}
	fill(&(*s).Color, base.Color)
	fill(&(*s).FontSize, base.FontSize)
	fill(&(*s).FontWeight, base.FontWeight)
}

func fillBadge(s **BadgeStyle, base *BadgeStyle) {
	if *s == nil {
		*s = &BadgeStyle{}
	}
	fill(&(*s).Background, base.Background)
	fill(&(*s).Color, base.Color)
	fill(&(*s).BorderRadius, base.BorderRadius)
}

func fillButton(s **ButtonStyle, base *ButtonStyle) {
	if *s == nil {
		*s = &ButtonStyle{}
	}
	fill(&(*s).Background, base.Background)
	fill(&(*s).Color, base.Color)
	fill(&(*s).Border, base.Border)
}

func fillProductCard(c, base *ProductCardStyles) {
	if c.Text == nil {
		c.Text = &CardText{}
	}
	fillText(&c.Text.Name, base.Text.Name)
	fillText(&c.Text.Price, base.Text.Price)
	fillText(&c.Text.SalePrice, base.Text.SalePrice)
	fillText(&c.Text.OriginalPrice, base.Text.OriginalPrice)
	fillText(&c.Text.Stock, base.Text.Stock)
	fillText(&c.Text.Category, base.Text.Category)

	if c.Badges == nil {
		c.Badges = &CardBadges{}
	}
	fillBadge(&c.Badges.Sale, base.Badges.Sale)
	fillBadge(&c.Badges.New, base.Badges.New)
	fillBadge(&c.Badges.LowStock, base.Badges.LowStock)
	fillBadge(&c.Badges.SoldOut, base.Badges.SoldOut)

	if c.Button == nil {
		c.Button = &ButtonStates{}
	}
	fillButton(&c.Button.Default, base.Button.Default)
	fillButton(&c.Button.Hover, base.Button.Hover)
	fillButton(&c.Button.Disabled, base.Button.Disabled)

	if c.Container == nil {
		c.Container = &ContainerStyle{}
	}
	fill(&c.Container.Background, base.Container.Background)
	fill(&c.Container.BorderColor, base.Container.BorderColor)
	fill(&c.Container.BorderRadius, base.Container.BorderRadius)
	fill(&c.Container.Shadow, base.Container.Shadow)
}

// An empty URL is a valid "no image" value and is kept.
func fillBackground(b, base *BackgroundImage) {
	fill(&b.OverlayColor, base.OverlayColor)
	if b.OverlayOpacity == nil {
		b.OverlayOpacity = opacity(*base.OverlayOpacity)
	}
}
