package srt

import (
	"fmt"
	"strings"

	"github.com/patrickprogramme/autosub/internal/transcript"
)

// Assemble sérialise les entrées, dans l'ordre reçu, en document SubRip
// complet : un cue par entrée, indexé à partir de 1, texte replié à
// maxLineChars. Déterministe : mêmes entrées, même sortie octet pour octet.
func Assemble(entries []transcript.Entry, maxLineChars int) string {
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d\n%s --> %s\n",
			i+1, FormatTimestamp(e.StartMs), FormatTimestamp(e.EndMs))
		for _, line := range wrapText(e.Text, maxLineChars) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// wrapText replie le texte en lignes d'au plus max caractères, par
// remplissage glouton mot à mot. Les sauts de ligne et espaces multiples
// du transcript sont normalisés en espaces simples. Un mot plus long que
// max occupe sa propre ligne, sans troncature.
func wrapText(text string, max int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 1)
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= max {
			line += " " + w
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
