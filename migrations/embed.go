// Package migrations embeds the SQL migration files so the server binary is
// self-contained regardless of its working directory.
package migrations

import "embed"

// FS contains all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
