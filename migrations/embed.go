// Package migrations embeds the SQL schema migrations for both storage
// backends. Files are named NNN_name.sql and applied in version order.
package migrations

import "embed"

//go:embed sqlite postgres
var FS embed.FS
