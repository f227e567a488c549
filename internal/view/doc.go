// Package view renders the public site pages and transactional email
// bodies as templ components.
//
// Components live in the .templ files; the _templ.go files next to them are
// generated with `templ generate` and committed. Pages share Layout for head
// metadata, analytics and the footer. The stylesheet and page scripts are
// embedded static files (see Static), so no component writes inline script.
package view

//go:generate go run github.com/a-h/templ/cmd/templ generate
