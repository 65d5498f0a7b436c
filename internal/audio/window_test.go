package audio

import (
	"context"
	"testing"
)

// piste synthétique : amplitude constante, 16 kHz mono 16 bits
func toneTrack(durationMs int64, amplitude int) *Track {
	const sr = 16000
	n := int(durationMs * sr / 1000)
	data := make([]int, n)
	for i := range data {
		data[i] = amplitude
	}
	return &Track{data: data, sampleRate: sr, channels: 1, bitDepth: 16}
}

func TestSlidingWindows_TilesExactly(t *testing.T) {
	tests := []struct {
		name    string
		totalMs int64
		chunkMs int64
		wantN   int64
	}{
		{"exact multiple", 21000, 7000, 3},
		{"remainder", 16000, 7000, 3},
		{"single short", 3000, 7000, 1},
		{"one ms over", 7001, 7000, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ws := slidingWindows(tc.totalMs, tc.chunkMs, 2000)
			if int64(len(ws)) != tc.wantN {
				t.Fatalf("got %d windows, want %d", len(ws), tc.wantN)
			}
			// pavage exact de [0, totalMs) : pas de trou, pas de chevauchement nominal
			cursor := int64(0)
			for i, w := range ws {
				if w.nominalStart != cursor {
					t.Errorf("window %d: nominalStart = %d; want %d", i, w.nominalStart, cursor)
				}
				if w.nominalEnd <= w.nominalStart {
					t.Errorf("window %d: empty nominal interval [%d,%d)", i, w.nominalStart, w.nominalEnd)
				}
				cursor = w.nominalEnd
			}
			if cursor != tc.totalMs {
				t.Errorf("last nominalEnd = %d; want %d", cursor, tc.totalMs)
			}
			// le contexte ne sort jamais de la piste et ne rétrécit jamais le segment
			for i, w := range ws {
				if w.exportStart < 0 || w.exportEnd > tc.totalMs {
					t.Errorf("window %d: export [%d,%d) out of [0,%d)", i, w.exportStart, w.exportEnd, tc.totalMs)
				}
				if w.exportEnd-w.exportStart < w.nominalEnd-w.nominalStart {
					t.Errorf("window %d: export shorter than nominal", i)
				}
			}
		})
	}
}

func TestSlidingWindows_ContextOverlap(t *testing.T) {
	// scénario de référence : 16 s, fenêtres de 7 s, contexte 2 s
	ws := slidingWindows(16000, 7000, 2000)
	if len(ws) != 3 {
		t.Fatalf("got %d windows, want 3", len(ws))
	}

	want := []window{
		{nominalStart: 0, nominalEnd: 7000, exportStart: 0, exportEnd: 9000},
		{nominalStart: 7000, nominalEnd: 14000, exportStart: 5000, exportEnd: 16000},
		{nominalStart: 14000, nominalEnd: 16000, exportStart: 12000, exportEnd: 16000},
	}
	for i, w := range ws {
		if w != want[i] {
			t.Errorf("window %d = %+v; want %+v", i, w, want[i])
		}
	}
}

func TestSlidingWindowSegment_ExportsChunks(t *testing.T) {
	track := toneTrack(16000, 8000)
	dir := t.TempDir()

	seg := &SlidingWindow{ChunkMs: 7000, ContextMs: 2000}
	segments, err := seg.Segment(context.Background(), track, dir)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(segments))
	}

	wantExportMs := []int64{9000, 11000, 4000}
	for i, s := range segments {
		got, err := LoadWAV(s.Path)
		if err != nil {
			t.Fatalf("reload chunk %d: %v", i, err)
		}
		if got.DurationMs() != wantExportMs[i] {
			t.Errorf("chunk %d: exported %d ms; want %d", i, got.DurationMs(), wantExportMs[i])
		}
	}

	// timing nominal indépendant du débordement de contexte
	if segments[1].StartMs != 7000 || segments[1].EndMs != 14000 {
		t.Errorf("segment 1 nominal = [%d,%d); want [7000,14000)", segments[1].StartMs, segments[1].EndMs)
	}
}

func TestTrack_SliceClampsBounds(t *testing.T) {
	track := toneTrack(1000, 100)

	if d := track.SliceMs(-500, 2000).DurationMs(); d != 1000 {
		t.Errorf("over-wide slice duration = %d ms; want 1000", d)
	}
	if d := track.SliceMs(800, 700).DurationMs(); d != 0 {
		t.Errorf("inverted slice duration = %d ms; want 0", d)
	}
	if d := track.SliceMs(250, 750).DurationMs(); d != 500 {
		t.Errorf("slice duration = %d ms; want 500", d)
	}
}

func TestTrack_ExportLoadRoundTrip(t *testing.T) {
	track := toneTrack(500, 4242)
	path := t.TempDir() + "/roundtrip.wav"

	if err := track.ExportWAV(path); err != nil {
		t.Fatalf("ExportWAV: %v", err)
	}
	got, err := LoadWAV(path)
	if err != nil {
		t.Fatalf("LoadWAV: %v", err)
	}
	if got.DurationMs() != 500 {
		t.Errorf("duration = %d ms; want 500", got.DurationMs())
	}
	if got.sampleRate != 16000 || got.channels != 1 {
		t.Errorf("format = %d Hz / %d ch; want 16000 Hz / 1 ch", got.sampleRate, got.channels)
	}
	if got.data[0] != 4242 {
		t.Errorf("first sample = %d; want 4242", got.data[0])
	}
}
