// Package migrations embeds the versioned SQL schema files so the server
// binary can migrate without a checkout next to it.
package migrations

import "embed"

//go:embed V*__*.sql
var FS embed.FS
