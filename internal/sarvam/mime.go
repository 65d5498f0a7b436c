package sarvam

import (
	"fmt"
	"path/filepath"
	"strings"
)

// types MIME acceptés par l'API, déduits de l'extension du fichier
var mimeByExt = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".wave": "audio/wave",
}

// mimeForFile retourne le type MIME du segment ou ErrUnsupportedFormat si
// l'extension n'est pas dans la liste blanche.
func mimeForFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	m, ok := mimeByExt[ext]
	if !ok {
		return "", fmt.Errorf("%w : extension %q", ErrUnsupportedFormat, ext)
	}
	return m, nil
}
