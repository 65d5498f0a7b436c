package audio

import (
	"context"
	"fmt"
	"math"
)

// SilenceBased découpe la piste aux silences détectés, puis scinde les
// chunks naturels dépassant MaxChunkMs en sous-chunks égaux.
//
// La reconstruction de la timeline suit le comportement historique du
// projet : l'horloge avance de keep_silence après CHAQUE chunk naturel,
// scindé ou non. Quand du silence est conservé, les timestamps dérivent
// donc légèrement de la position réelle dans la source. C'est une limite
// connue, volontairement reproduite : la « bonne » timeline est ambiguë
// sans vérité terrain, et la corriger changerait la sortie observable.
type SilenceBased struct {
	MinSilenceMs  int64
	ThresholdDb   float64
	KeepSilenceMs int64
	MaxChunkMs    int64
}

// pas d'analyse de l'énergie : fenêtres de 10 ms
const silenceStepMs = 10

// msRange : intervalle [startMs, endMs) sur la piste analysée.
type msRange struct {
	startMs int64
	endMs   int64
}

// detectNonSilent retourne les plages non silencieuses de la piste.
// Une plage est silencieuse si chaque fenêtre de 10 ms y reste sous
// threshDb (dBFS) pendant au moins minSilenceMs.
func detectNonSilent(t *Track, minSilenceMs int64, threshDb float64) []msRange {
	total := t.DurationMs()
	if total <= 0 {
		return nil
	}

	// silence par fenêtre de 10 ms
	nWin := (total + silenceStepMs - 1) / silenceStepMs
	silent := make([]bool, nWin)
	for i := int64(0); i < nWin; i++ {
		start := i * silenceStepMs
		end := start + silenceStepMs
		if end > total {
			end = total
		}
		silent[i] = t.SliceMs(start, end).dbFS() < threshDb
	}

	// plages silencieuses d'au moins minSilenceMs
	minWin := minSilenceMs / silenceStepMs
	if minWin < 1 {
		minWin = 1
	}
	var silences []msRange
	run := int64(0)
	for i := int64(0); i <= nWin; i++ {
		if i < nWin && silent[i] {
			run++
			continue
		}
		if run >= minWin {
			start := (i - run) * silenceStepMs
			end := i * silenceStepMs
			if end > total {
				end = total
			}
			silences = append(silences, msRange{start, end})
		}
		run = 0
	}

	// complément = plages non silencieuses
	var out []msRange
	cursor := int64(0)
	for _, s := range silences {
		if s.startMs > cursor {
			out = append(out, msRange{cursor, s.startMs})
		}
		cursor = s.endMs
	}
	if cursor < total {
		out = append(out, msRange{cursor, total})
	}
	return out
}

// dbFS retourne le niveau RMS de la piste en dBFS (0 = pleine échelle).
// Piste vide ou silence numérique -> -infini.
func (t *Track) dbFS() float64 {
	if len(t.data) == 0 {
		return math.Inf(-1)
	}
	var sum float64
	for _, v := range t.data {
		f := float64(v)
		sum += f * f
	}
	rms := math.Sqrt(sum / float64(len(t.data)))
	if rms == 0 {
		return math.Inf(-1)
	}
	fullScale := float64(int64(1) << (t.bitDepth - 1))
	return 20 * math.Log10(rms/fullScale)
}

// splitOnSilence partitionne la piste en chunks naturels aux silences,
// en conservant keepSilenceMs de rembourrage de chaque côté (borné à la
// piste). Contrat : les buffers retournés ne portent aucune information
// de position absolue ; la timeline est reconstruite par l'appelant.
// Aucun silence détecté -> un seul chunk couvrant toute la piste.
func splitOnSilence(t *Track, minSilenceMs int64, threshDb float64, keepSilenceMs int64) []*Track {
	total := t.DurationMs()
	ranges := detectNonSilent(t, minSilenceMs, threshDb)

	chunks := make([]*Track, 0, len(ranges))
	for _, r := range ranges {
		start := r.startMs - keepSilenceMs
		if start < 0 {
			start = 0
		}
		end := r.endMs + keepSilenceMs
		if end > total {
			end = total
		}
		chunks = append(chunks, t.SliceMs(start, end))
	}
	return chunks
}

// span : intervalle nominal absolu d'un segment émis.
type span struct {
	startMs int64
	endMs   int64
}

// splitSpans découpe un chunk de durée d en sous-intervalles relatifs.
// d <= maxChunkMs : un seul intervalle. Sinon k = floor(d/max)+1 sous-chunks
// « égaux », avec des bornes entières i*d/k qui pavent [0, d) sans perdre
// de milliseconde.
func splitSpans(d, maxChunkMs int64) []span {
	if d <= maxChunkMs {
		return []span{{0, d}}
	}
	k := d/maxChunkMs + 1
	spans := make([]span, 0, k)
	for i := int64(0); i < k; i++ {
		spans = append(spans, span{i * d / k, (i + 1) * d / k})
	}
	return spans
}

// stepClock est l'étape du fold qui reconstruit la timeline : elle place
// les intervalles d'un chunk naturel de durée d à partir de clock, puis
// avance l'horloge de d + keepSilenceMs — une seule fois pour le chunk
// entier, même scindé (voir la note de dérive sur SilenceBased).
func stepClock(clock, d, keepSilenceMs, maxChunkMs int64) (int64, []span) {
	rel := splitSpans(d, maxChunkMs)
	abs := make([]span, len(rel))
	for i, s := range rel {
		abs[i] = span{clock + s.startMs, clock + s.endMs}
	}
	return clock + d + keepSilenceMs, abs
}

// Segment détecte les chunks naturels puis déroule l'horloge séquentiellement
// (chaque étape dépend de la durée du chunk précédent : non parallélisable).
func (s *SilenceBased) Segment(ctx context.Context, t *Track, outDir string) ([]Segment, error) {
	if s.MinSilenceMs <= 0 {
		return nil, fmt.Errorf("silence: min silence %d ms invalide", s.MinSilenceMs)
	}
	if s.MaxChunkMs <= 0 {
		return nil, fmt.Errorf("silence: max chunk duration %d ms invalide", s.MaxChunkMs)
	}

	chunks := splitOnSilence(t, s.MinSilenceMs, s.ThresholdDb, s.KeepSilenceMs)

	var segments []Segment
	clock := int64(0)
	idx := 0
	for _, chunk := range chunks {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		d := chunk.DurationMs()
		if d <= 0 {
			continue
		}
		newClock, spans := stepClock(clock, d, s.KeepSilenceMs, s.MaxChunkMs)
		for _, sp := range spans {
			path := chunkPath(outDir, idx)
			if err := chunk.SliceMs(sp.startMs-clock, sp.endMs-clock).ExportWAV(path); err != nil {
				return nil, fmt.Errorf("export chunk %d: %w", idx, err)
			}
			segments = append(segments, Segment{
				Path:    path,
				StartMs: sp.startMs,
				EndMs:   sp.endMs,
			})
			idx++
		}
		clock = newClock
	}
	return segments, nil
}
