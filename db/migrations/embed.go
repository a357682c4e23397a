package migrations

import "embed"

// FS contains the embedded Postgres migrations for boards and message mappings.
//
//go:embed *.sql
var FS embed.FS
