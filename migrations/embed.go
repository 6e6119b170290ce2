// Package migrations embeds the SQL schema migrations, one directory per
// database driver.
package migrations

import "embed"

// FS holds postgres/, mysql/ and sqlite/ migration sets
//
//go:embed postgres/*.sql mysql/*.sql sqlite/*.sql
var FS embed.FS
