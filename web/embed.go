// Package web embeds the preview client served by cmd/server.
package web

import "embed"

//go:embed index.html
var Content embed.FS
