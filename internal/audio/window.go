package audio

import (
	"context"
	"fmt"
)

// SlidingWindow découpe la piste en fenêtres nominales de durée fixe qui
// pavent exactement [0, durée), sans trou ni chevauchement. L'audio exporté
// déborde de ContextMs de chaque côté (borné à la piste) pour donner au
// modèle de transcription l'amorce et la chute acoustiques.
type SlidingWindow struct {
	ChunkMs   int64
	ContextMs int64
}

// window : bornes nominales et bornes d'export d'une fenêtre.
type window struct {
	nominalStart int64
	nominalEnd   int64
	exportStart  int64
	exportEnd    int64
}

// slidingWindows calcule les ceil(totalMs/chunkMs) fenêtres.
// Fonction pure, séparée de l'export pour être testable sans I/O.
func slidingWindows(totalMs, chunkMs, contextMs int64) []window {
	if totalMs <= 0 || chunkMs <= 0 {
		return nil
	}
	n := (totalMs + chunkMs - 1) / chunkMs
	out := make([]window, 0, n)
	for i := int64(0); i < n; i++ {
		w := window{
			nominalStart: i * chunkMs,
			nominalEnd:   (i + 1) * chunkMs,
		}
		if w.nominalEnd > totalMs {
			w.nominalEnd = totalMs
		}
		w.exportStart = w.nominalStart - contextMs
		if w.exportStart < 0 {
			w.exportStart = 0
		}
		w.exportEnd = w.nominalEnd + contextMs
		if w.exportEnd > totalMs {
			w.exportEnd = totalMs
		}
		out = append(out, w)
	}
	return out
}

// Segment exporte chaque fenêtre dans outDir et retourne les segments en
// ordre d'index. Les fenêtres sont indépendantes entre elles.
func (s *SlidingWindow) Segment(ctx context.Context, t *Track, outDir string) ([]Segment, error) {
	if s.ChunkMs <= 0 {
		return nil, fmt.Errorf("sliding window: chunk duration %d ms invalide", s.ChunkMs)
	}
	ctxMs := s.ContextMs
	if ctxMs < 0 {
		ctxMs = 0
	}

	windows := slidingWindows(t.DurationMs(), s.ChunkMs, ctxMs)
	segments := make([]Segment, 0, len(windows))
	for i, w := range windows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		path := chunkPath(outDir, i)
		if err := t.SliceMs(w.exportStart, w.exportEnd).ExportWAV(path); err != nil {
			return nil, fmt.Errorf("export fenêtre %d: %w", i, err)
		}
		segments = append(segments, Segment{
			Path:    path,
			StartMs: w.nominalStart,
			EndMs:   w.nominalEnd,
		})
	}
	return segments, nil
}
