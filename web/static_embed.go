// ABOUTME: Embeds the web/static/ stylesheet for serving via the viewer's HTTP server.
// ABOUTME: Uses an explicit subdirectory glob because //go:embed static/* does not recurse.
package web

import "embed"

//go:embed static/css/*.css
var staticFS embed.FS
