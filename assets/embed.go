// Package assets embeds static files shipped inside the binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed locales/*.yaml
var FS embed.FS

// Locales returns the locale catalog tree rooted at "locales".
func Locales() fs.FS {
	sub, err := fs.Sub(FS, "locales")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return sub
}
