package transcript

import (
	"context"
	"sync"

	"github.com/patrickprogramme/autosub/internal/audio"
	"github.com/patrickprogramme/autosub/internal/sarvam"
)

// Collector pilote le client de transcription sur chaque segment et
// produit une entrée par segment, dans l'ordre d'entrée.
//
// Politique de récupération : un échec de transcription est absorbé
// localement et remplacé par Placeholder ; le pipeline n'avorte jamais
// pour un segment isolé. Un succès partiel vaut toujours mieux qu'un
// run abandonné.
type Collector struct {
	client  sarvam.Interface
	workers int
}

// NewCollector construit un collecteur. workers borne le nombre d'appels
// API simultanés ; 1 (ou moins) = traitement strictement séquentiel,
// comportement par défaut.
func NewCollector(client sarvam.Interface, workers int) *Collector {
	if workers < 1 {
		workers = 1
	}
	return &Collector{client: client, workers: workers}
}

// Collect transcrit tous les segments et retourne les entrées dans l'ordre
// des segments, quelle que soit la stratégie d'exécution. prompt est
// l'indice de langue transmis tel quel au client.
func (c *Collector) Collect(ctx context.Context, segments []audio.Segment, prompt string) []Entry {
	entries := make([]Entry, len(segments))

	if c.workers == 1 {
		for i, seg := range segments {
			entries[i] = c.transcribeOne(ctx, seg, prompt)
		}
		return entries
	}

	// parallélisation bornée ; chaque goroutine écrit sa propre case,
	// l'ordre de sortie est donc celui de l'entrée par construction
	sem := make(chan struct{}, c.workers)
	var wg sync.WaitGroup
	for i, seg := range segments {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, seg audio.Segment) {
			defer wg.Done()
			defer func() { <-sem }()
			entries[i] = c.transcribeOne(ctx, seg, prompt)
		}(i, seg)
	}
	wg.Wait()
	return entries
}

func (c *Collector) transcribeOne(ctx context.Context, seg audio.Segment, prompt string) Entry {
	text, err := c.client.Transcribe(ctx, seg.Path, prompt)
	if err != nil {
		text = Placeholder
	}
	return Entry{
		StartMs: seg.StartMs,
		EndMs:   seg.EndMs,
		Text:    text,
	}
}
