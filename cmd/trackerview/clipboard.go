//go:build !js && (windows || cgo)

package main

import (
	"github.com/rs/zerolog/log"
	"golang.design/x/clipboard"
)

var clipboardReady bool

// InitClipboard reports whether the system clipboard can be used.
func InitClipboard() bool {
	err := clipboard.Init()
	if err != nil {
		log.Warn().Err(err).Msg("clipboard init failed")
	}
	clipboardReady = err == nil
	return clipboardReady
}

func ClipboardWriteText(str string) {
	if clipboardReady {
		clipboard.Write(clipboard.FmtText, []byte(str))
	}
}
