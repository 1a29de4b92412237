// ABOUTME: Embeds web/static/ CSS and JS files served under /static/ and copied by the exporter.
// ABOUTME: Uses explicit subdirectory globs because //go:embed static/* does not recurse.
package web

import "embed"

//go:embed static/css/*.css static/js/*.js
var StaticFS embed.FS
