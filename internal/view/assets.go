package view

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFiles embed.FS

// Static holds the site stylesheet and page scripts, served under /static/
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
