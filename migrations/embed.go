// Package migrations embeds the goose SQL migrations for users, travel plans
// and custom facet entries.
package migrations

import "embed"

// FS holds every *.sql migration, compiled into the binary so the API can
// migrate on boot and tests can build a goose.Provider without a path.
//
//go:embed *.sql
var FS embed.FS
