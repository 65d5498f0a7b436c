// Package srt assemble les entrées de transcript en document SubRip.
package srt

import "fmt"

// FormatTimestamp convertit un décalage en millisecondes vers l'horodatage
// SubRip "HH:MM:SS,mmm". Les heures ne sont pas bornées (zéro-remplies à
// 2 chiffres minimum). Fonction pure et totale pour tout ms >= 0 ; le
// comportement est indéfini pour un décalage négatif, jamais produit en
// amont.
func FormatTimestamp(ms int64) string {
	msec := ms % 1000
	totalSec := ms / 1000
	sec := totalSec % 60
	totalMin := totalSec / 60
	min := totalMin % 60
	hours := totalMin / 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, min, sec, msec)
}
