// Package configs embeds the default configuration files so the binaries
// run without a config directory.
package configs

import "embed"

// FS holds game.json, villager.yaml and the stages
//
//go:embed game.json villager.yaml stages
var FS embed.FS
