// Package migrations embeds the per-backend SQL migration files so the
// binary can initialize and upgrade its own schema.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
