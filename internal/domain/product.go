package domain

import (
	"strings"
	"time"
)

// Category identifies a product category in the catalog.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryCases    Category = "cases"
	CategoryScreen   Category = "screen"
	CategoryChargers Category = "chargers"
	CategoryCables   Category = "cables"
	CategoryAudio    Category = "audio"
	CategoryHolders  Category = "holders"
)

// CategoryInfo carries the display metadata for a category.
type CategoryInfo struct {
	ID    Category `json:"id"`
	Name  string   `json:"name"`
	Glyph string   `json:"glyph"`
}

// Categories lists every category in display order, including the
// synthetic "all" entry used by the filter.
var Categories = []CategoryInfo{
	{CategoryAll, "Tudo", "✦"},
	{CategoryCases, "Capinhas", "📱"},
	{CategoryScreen, "Películas", "🛡️"},
	{CategoryChargers, "Carregadores", "⚡"},
	{CategoryCables, "Cabos", "🔌"},
	{CategoryAudio, "Áudio", "🎧"},
	{CategoryHolders, "Suportes", "🧲"},
}

// ValidCategory reports whether c is a real product category ("all" is
// a filter value, not a category a product can carry).
func ValidCategory(c Category) bool {
	for _, info := range Categories {
		if info.ID == c && c != CategoryAll {
			return true
		}
	}
	return false
}

// Glyph returns the display glyph for a category, or the "all" glyph
// when the category is unknown.
func (c Category) Glyph() string {
	for _, info := range Categories {
		if info.ID == c {
			return info.Glyph
		}
	}
	return Categories[0].Glyph
}

// ModelInfo carries the display name for a phone model id.
type ModelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Models lists the supported phone models in display order. The "all"
// entry means a product fits every model.
var Models = []ModelInfo{
	{"all", "Todos os Modelos"},
	{"16-pro-max", "iPhone 16 Pro Max"},
	{"16-pro", "iPhone 16 Pro"},
	{"16-plus", "iPhone 16 Plus"},
	{"16", "iPhone 16"},
	{"15-pro-max", "iPhone 15 Pro Max"},
	{"15-pro", "iPhone 15 Pro"},
	{"15-plus", "iPhone 15 Plus"},
	{"15", "iPhone 15"},
	{"14-pro-max", "iPhone 14 Pro Max"},
	{"14-pro", "iPhone 14 Pro"},
	{"14-plus", "iPhone 14 Plus"},
	{"14", "iPhone 14"},
	{"13", "iPhone 13"},
	{"12", "iPhone 12"},
	{"11", "iPhone 11"},
}

// ValidModel reports whether id is a known model id (including "all").
func ValidModel(id string) bool {
	for _, m := range Models {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Tags lists the promotional tags a product may carry. The empty string
// means no tag.
var Tags = []string{
	"Mais Pedida",
	"Novidade",
	"Promoção",
	"Original",
	"Proteção Total",
	"Indestrutível",
	"3 em 1",
	"50% em 30min",
}

// ValidTag reports whether tag is empty or one of the known tags.
func ValidTag(tag string) bool {
	if tag == "" {
		return true
	}
	for _, t := range Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ColorVariant is a named color of a product with its own photo. Token
// is a stable handle issued when the variant is created in the editor;
// list positions shift, tokens do not.
type ColorVariant struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Product is a catalog entry. Images are inline data URLs, bounded at
// intake. Colors is the legacy shape kept readable for documents
// written before variants carried photos.
type Product struct {
	ID                 ProductID      `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description,omitempty"`
	Category           Category       `json:"category"`
	Models             []string       `json:"models,omitempty"`
	PriceCents         int64          `json:"price_cents"`
	OriginalPriceCents *int64         `json:"original_price_cents,omitempty"`
	Image              string         `json:"image,omitempty"`
	ColorVariants      []ColorVariant `json:"color_variants,omitempty"`
	Colors             []string       `json:"colors,omitempty"`
	Tag                string         `json:"tag,omitempty"`
	MagSafe            bool           `json:"magsafe"`
	CreatedAt          time.Time      `json:"created_at,omitempty"`
	UpdatedAt          time.Time      `json:"updated_at,omitempty"`
}

// ColorNames returns the selectable color names, preferring variants
// over the legacy colors list.
func (p *Product) ColorNames() []string {
	if len(p.ColorVariants) > 0 {
		names := make([]string, len(p.ColorVariants))
		for i, v := range p.ColorVariants {
			names[i] = v.Name
		}
		return names
	}
	return p.Colors
}

// ImageFor resolves the photo to show for a color selection: the named
// variant's photo, falling back to the first variant, then to the main
// photo. An empty result means the caller should show the category glyph.
func (p *Product) ImageFor(colorName string) string {
	if len(p.ColorVariants) > 0 {
		if colorName != "" {
			for _, v := range p.ColorVariants {
				if v.Name == colorName && v.Image != "" {
					return v.Image
				}
			}
		}
		if p.ColorVariants[0].Image != "" {
			return p.ColorVariants[0].Image
		}
	}
	return p.Image
}

// MatchesSearch reports whether the product name contains the term,
// case-insensitively. An empty term matches everything.
func (p *Product) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(term))
}

// FitsModel reports whether the product fits the given model id. A
// product listing "all" fits every model, and the "all" filter value
// matches every product.
func (p *Product) FitsModel(modelID string) bool {
	if modelID == "" || modelID == "all" {
		return true
	}
	for _, m := range p.Models {
		if m == "all" || m == modelID {
			return true
		}
	}
	return false
}
