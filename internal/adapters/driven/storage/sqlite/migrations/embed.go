// Package migrations holds the receipt schema, applied in file name order.
package migrations

import "embed"

// FS is the set of *.up.sql and *.down.sql files.
//
//go:embed *.sql
var FS embed.FS
