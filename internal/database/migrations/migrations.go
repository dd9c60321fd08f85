// Package migrations embeds the versioned schema of every supported data
// store. Each dialect lives in its own directory.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
