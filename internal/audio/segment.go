package audio

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/patrickprogramme/autosub/pkg/model"
)

// Vérifications d'implémentation à la compilation.
var (
	_ Segmenter = (*SlidingWindow)(nil)
	_ Segmenter = (*SilenceBased)(nil)
)

// Segment est une unité d'audio à transcrire : le fichier exporté et son
// intervalle nominal [StartMs, EndMs) sur la timeline de la source.
// L'audio exporté peut déborder de l'intervalle nominal (contexte) sans
// que cela n'affecte le timing des sous-titres.
type Segment struct {
	Path    string
	StartMs int64
	EndMs   int64
}

func (s Segment) DurationMs() int64 {
	return s.EndMs - s.StartMs
}

func (s Segment) String() string {
	return fmt.Sprintf("segment %s -> %s (%s)",
		model.Seconds(s.StartMs/1000).TimestampHHMMSS(),
		model.Seconds(s.EndMs/1000).TimestampHHMMSS(),
		filepath.Base(s.Path))
}

// Segmenter découpe une piste en segments bornés, exportés dans outDir.
// Les deux stratégies (fenêtre glissante, silences) implémentent cette
// interface ; l'appelant choisit la variante, jamais de sous-classage.
type Segmenter interface {
	Segment(ctx context.Context, t *Track, outDir string) ([]Segment, error)
}

// chunkPath retourne le chemin du fichier exporté pour l'index donné.
func chunkPath(outDir string, idx int) string {
	return filepath.Join(outDir, fmt.Sprintf("chunk_%03d.wav", idx))
}
