// Package web carries the front-end assets compiled into the binary.
package web

import "embed"

// Templates embeds HTML templates.
//
//go:embed templates/layouts/*.html templates/partials/*.html templates/pages/*.html
var Templates embed.FS

// Static embeds CSS, scripts and images served under /static/.
//
//go:embed static
var Static embed.FS
