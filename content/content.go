// Package content embeds the markdown shipped with the toolkit.
package content

import "embed"

// OpsManual is the operations manual path inside FS.
const OpsManual = "ops-manual.md"

// ManualsRoot is the manuals library directory inside FS.
const ManualsRoot = "manuals_data"

//go:embed ops-manual.md manuals_data
var FS embed.FS
