// internal/domain/carousel/entity.go
package carousel

import (
	"time"
)

// Section identifies a product carousel on a page
type Section string

const (
	SectionAll         Section = "all"
	SectionBestsellers Section = "bestsellers"
	SectionNewArrivals Section = "new-arrivals"
)

// Sections lists every valid section
var Sections = []Section{SectionAll, SectionBestsellers, SectionNewArrivals}

// Valid reports whether s is a known section
func (s Section) Valid() bool {
	for _, v := range Sections {
		if v == s {
			return true
		}
	}
	return false
}

// CarouselConfig is the look of one carousel and of its "view all" page
type CarouselConfig struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Page    string  `gorm:"not null;size:64;uniqueIndex:idx_carousel_page_section" json:"page"`
	Section Section `gorm:"not null;size:32;uniqueIndex:idx_carousel_page_section" json:"section"`

	Title            string `gorm:"size:100" json:"title"`
	BackgroundColor  string `gorm:"size:32" json:"background_color"`
	TitleColor       string `gorm:"size:32" json:"title_color"`
	ArrowColor       string `gorm:"size:32" json:"arrow_color"`
	BadgeColor       string `gorm:"size:32" json:"badge_color"`
	TitleSize        string `gorm:"size:16" json:"title_size"`
	CardWidth        int    `json:"card_width"` // Pixels
	CardsPerView     int    `json:"cards_per_view"`
	ShowArrows       bool   `json:"show_arrows"`
	ShowBadges       bool   `json:"show_badges"`
	Autoplay         bool   `json:"autoplay"`
	AutoplayInterval int    `json:"autoplay_interval"` // Milliseconds

	ViewAllTitle           string `gorm:"size:100" json:"view_all_title"`
	ViewAllBackgroundColor string `gorm:"size:32" json:"view_all_background_color"`
	ViewAllTitleColor      string `gorm:"size:32" json:"view_all_title_color"`
	ViewAllTitleSize       string `gorm:"size:16" json:"view_all_title_size"`
	ViewAllCardsPerRow     int    `json:"view_all_cards_per_row"`
	ViewAllShowBadges      bool   `json:"view_all_show_badges"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (CarouselConfig) TableName() string {
	return "carousel_configs"
}

var sectionTitles = map[Section]string{
	SectionAll:         "All Products",
	SectionBestsellers: "Bestsellers",
	SectionNewArrivals: "New Arrivals",
}

// DefaultConfig is served for a page and section nobody has configured
func DefaultConfig(page string, section Section) *CarouselConfig {
	title := sectionTitles[section]
	return &CarouselConfig{
		Page:             page,
		Section:          section,
		Title:            title,
		BackgroundColor:  "#ffffff",
		TitleColor:       "#111827",
		ArrowColor:       "#1e40af",
		BadgeColor:       "#dc2626",
		TitleSize:        "1.5rem",
		CardWidth:        240,
		CardsPerView:     4,
		ShowArrows:       true,
		ShowBadges:       true,
		Autoplay:         false,
		AutoplayInterval: 5000,

		ViewAllTitle:           title,
		ViewAllBackgroundColor: "#ffffff",
		ViewAllTitleColor:      "#111827",
		ViewAllTitleSize:       "2rem",
		ViewAllCardsPerRow:     4,
		ViewAllShowBadges:      true,
	}
}
