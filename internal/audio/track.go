// Package audio contient le cœur du pipeline : décodage WAV, découpe en
// segments bornés (deux stratégies) et export des chunks à transcrire.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Track est une piste audio décodée en PCM entier, entrelacé par canal.
type Track struct {
	data       []int
	sampleRate int
	channels   int
	bitDepth   int
}

// LoadWAV décode un fichier WAV entier en mémoire.
// Les sources sont extraites en 16 kHz mono par yt-dlp : quelques Mo par
// minute, acceptable pour des vidéos plafonnées à 20 minutes.
func LoadWAV(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("fichier WAV invalide : %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode wav %s: %w", path, err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("fichier WAV vide : %s", path)
	}

	sr := int(dec.SampleRate)
	if sr == 0 && buf.Format != nil {
		sr = buf.Format.SampleRate
	}
	if sr <= 0 {
		return nil, fmt.Errorf("sample rate illisible : %s", path)
	}

	ch := int(dec.NumChans)
	if ch == 0 && buf.Format != nil {
		ch = buf.Format.NumChannels
	}
	if ch <= 0 {
		ch = 1
	}

	bd := buf.SourceBitDepth
	if bd <= 0 {
		bd = int(dec.BitDepth)
	}
	if bd <= 0 {
		bd = 16
	}

	return &Track{
		data:       buf.Data,
		sampleRate: sr,
		channels:   ch,
		bitDepth:   bd,
	}, nil
}

// DurationMs retourne la durée de la piste en millisecondes (troncature).
func (t *Track) DurationMs() int64 {
	frames := int64(len(t.data) / t.channels)
	return frames * 1000 / int64(t.sampleRate)
}

// frameIndex convertit une position en ms vers un index de frame, borné.
func (t *Track) frameIndex(ms int64) int {
	frames := len(t.data) / t.channels
	idx := int(ms * int64(t.sampleRate) / 1000)
	if idx < 0 {
		idx = 0
	}
	if idx > frames {
		idx = frames
	}
	return idx
}

// SliceMs retourne la sous-piste [startMs, endMs). Les bornes sont
// clampées sur [0, durée]. Les données sont partagées (pas de copie).
func (t *Track) SliceMs(startMs, endMs int64) *Track {
	s := t.frameIndex(startMs) * t.channels
	e := t.frameIndex(endMs) * t.channels
	if e < s {
		e = s
	}
	return &Track{
		data:       t.data[s:e],
		sampleRate: t.sampleRate,
		channels:   t.channels,
		bitDepth:   t.bitDepth,
	}
}

// ExportWAV écrit la piste dans path au format WAV PCM.
func (t *Track) ExportWAV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := wav.NewEncoder(f, t.sampleRate, t.bitDepth, t.channels, 1)
	buf := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: t.channels,
			SampleRate:  t.sampleRate,
		},
		Data:           t.data,
		SourceBitDepth: t.bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("encode wav %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalize wav %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close wav %s: %w", path, err)
	}
	return nil
}
