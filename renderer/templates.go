package renderer

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.md
var templateFS embed.FS

// templates holds the markdown templates, addressed by file name.
var templates = mustSub(templateFS, "templates")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
