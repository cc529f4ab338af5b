// Package assets provides the stylesheets embedded in HTML previews.
//
// Styles are named (default, dark) and compiled into the binary, or read
// from a .css file given by path:
//
//	css, err := assets.ResolveStyle("dark")
//	css, err := assets.ResolveStyle("./styles/course.css")
//
// The name "none" yields an empty stylesheet.
package assets
