// Package schemas provides the embedded SQL files that define the review,
// item and topic progress tables.
package schemas

import "embed"

// Migrations contains all SQL migration files, applied in lexical order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
