// internal/domain/theme/errors.go
package theme

import "github.com/pkg/errors"

var (
	ErrThemeNotFound         = errors.New("theme not found")
	ErrDefaultThemeProtected = errors.New("the default theme cannot be deleted or deactivated")
	ErrActiveThemeProtected  = errors.New("the active theme cannot be deleted")
	ErrEmptyThemeName        = errors.New("theme name is required")
	ErrUnknownPage           = errors.New("unknown page")
	ErrInvalidPatch          = errors.New("invalid theme patch")
)
