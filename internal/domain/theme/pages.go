// internal/domain/theme/pages.go
package theme

import (
	"strings"
)

// Known page identifiers
const (
	PageHome        = "/"
	PagePokemonTCG  = "/pokemontcg"
	PageBoardGames  = "/boardgames"
	PageAccessories = "/accessories"
	PageHotWheels   = "/hotwheels"
	PageCart        = "/cart"
	PageCheckout    = "/checkout"
	PageAdmin       = "/admin"
)

// KnownPages lists every page a theme can be assigned to
var KnownPages = []string{
	PageHome,
	PagePokemonTCG,
	PageBoardGames,
	PageAccessories,
	PageHotWheels,
	PageCart,
	PageCheckout,
	PageAdmin,
}

func cleanPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// LookupPage returns the known page id for path, which must name the page itself
func LookupPage(path string) (string, bool) {
	path = cleanPath(path)
	for _, p := range KnownPages {
		if p == path {
			return p, true
		}
	}
	return "", false
}

// NormalizePage maps a route path onto a known page id. Sub-paths resolve to
// their parent page and anything unknown resolves to the home page.
func NormalizePage(path string) string {
	path = cleanPath(path)
	for _, p := range KnownPages {
		if p == PageHome {
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return p
		}
	}
	return PageHome
}

// IsAdminPath reports whether path is under the admin prefix
func IsAdminPath(path, prefix string) bool {
	if prefix == "" {
		prefix = PageAdmin
	}
	path = cleanPath(path)
	prefix = cleanPath(prefix)
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
