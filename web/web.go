// Package web embeds the compiled single-page frontend served alongside
// the API.
package web

import "embed"

//go:embed static
var Assets embed.FS
