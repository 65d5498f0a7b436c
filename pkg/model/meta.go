package model

import (
	"fmt"
	"time"
)

// Meta regroupe les métadonnées extraites d'une vidéo YouTube.
// Duration est indispensable ici : elle sert au plafonnage de durée
// avant de lancer la transcription (politique de l'appelant).
type Meta struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Uploader   string    `json:"uploader,omitempty"`
	UploadDate time.Time `json:"upload_date,omitempty"`
	Duration   Seconds   `json:"duration,omitempty"`
}

func (m Meta) HasDuration() bool {
	return m.Duration > 0
}

func (m Meta) String() string {
	return fmt.Sprintf("Meta[ID=%s, Title=%q, Uploader=%s, Duration=%s]",
		m.ID, m.Title, m.Uploader, m.Duration.TimestampHHMMSS())
}

// Pretty retourne une fiche multi-lignes simple.
func (m Meta) Pretty() string {
	dateStr := "<unknown>"
	if !m.UploadDate.IsZero() {
		dateStr = m.UploadDate.Format("2006-01-02")
	}

	durStr := "<unknown>"
	if m.HasDuration() {
		durStr = m.Duration.TimestampHHMMSS()
	}

	return fmt.Sprintf(
		"Meta:\n"+
			"  ID       : %s\n"+
			"  Title    : %q\n"+
			"  Uploader : %s\n"+
			"  Date     : %s\n"+
			"  Duration : %s\n",
		m.ID,
		m.Title,
		m.Uploader,
		dateStr,
		durStr,
	)
}
