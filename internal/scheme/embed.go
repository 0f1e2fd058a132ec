package scheme

import "embed"

// EmbeddedSchemes ships the schemes that work without any installation.
//
//go:embed defaults/*.scheme
var EmbeddedSchemes embed.FS
