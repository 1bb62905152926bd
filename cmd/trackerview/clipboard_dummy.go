//go:build js || (!windows && !cgo)

package main

// golang.design/x/clipboard needs cgo outside windows.

import "github.com/rs/zerolog/log"

func InitClipboard() bool {
	log.Info().Msg("clipboard is disabled in this build")
	return false
}

func ClipboardWriteText(string) {}
