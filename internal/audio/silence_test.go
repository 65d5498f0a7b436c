package audio

import (
	"context"
	"math"
	"testing"
)

// piste ton / silence / ton, frontières alignées sur les fenêtres de 10 ms
func toneSilenceTone(toneMs, silenceMs int64) *Track {
	const sr = 16000
	samples := func(ms int64) int { return int(ms * sr / 1000) }

	data := make([]int, 0, samples(2*toneMs+silenceMs))
	for i := 0; i < samples(toneMs); i++ {
		data = append(data, 8000)
	}
	for i := 0; i < samples(silenceMs); i++ {
		data = append(data, 0)
	}
	for i := 0; i < samples(toneMs); i++ {
		data = append(data, 8000)
	}
	return &Track{data: data, sampleRate: sr, channels: 1, bitDepth: 16}
}

func TestDbFS(t *testing.T) {
	silent := toneTrack(100, 0)
	if got := silent.dbFS(); !math.IsInf(got, -1) {
		t.Errorf("dbFS(silence numérique) = %f; want -Inf", got)
	}

	full := toneTrack(100, 32768)
	if got := full.dbFS(); math.Abs(got) > 0.01 {
		t.Errorf("dbFS(pleine échelle) = %f; want ~0", got)
	}

	tone := toneTrack(100, 8000)
	if got := tone.dbFS(); got < -15 || got > -10 {
		t.Errorf("dbFS(ton 8000/32768) = %f; want ~-12.2", got)
	}
}

func TestDetectNonSilent(t *testing.T) {
	track := toneSilenceTone(1000, 1500)

	got := detectNonSilent(track, 1000, -40)
	want := []msRange{{0, 1000}, {2500, 3500}}
	if len(got) != len(want) {
		t.Fatalf("got %d ranges (%v), want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("range %d = %+v; want %+v", i, got[i], want[i])
		}
	}
}

func TestDetectNonSilent_ShortSilenceIgnored(t *testing.T) {
	// silence de 500 ms < seuil de 1000 ms : la piste reste d'un seul tenant
	track := toneSilenceTone(1000, 500)

	got := detectNonSilent(track, 1000, -40)
	if len(got) != 1 {
		t.Fatalf("got %d ranges (%v), want 1", len(got), got)
	}
	if got[0] != (msRange{0, 2500}) {
		t.Errorf("range = %+v; want {0 2500}", got[0])
	}
}

func TestSplitOnSilence(t *testing.T) {
	track := toneSilenceTone(1000, 1500)

	chunks := splitOnSilence(track, 1000, -40, 500)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	// chaque chunk = 1000 ms de ton + 500 ms de silence conservé
	for i, c := range chunks {
		if c.DurationMs() != 1500 {
			t.Errorf("chunk %d: %d ms; want 1500", i, c.DurationMs())
		}
	}
}

func TestSplitOnSilence_NoSilence(t *testing.T) {
	track := toneTrack(3000, 8000)

	chunks := splitOnSilence(track, 1000, -40, 500)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].DurationMs() != 3000 {
		t.Errorf("chunk = %d ms; want la piste entière (3000)", chunks[0].DurationMs())
	}
}

func TestSplitSpans(t *testing.T) {
	tests := []struct {
		name string
		d    int64
		max  int64
		want []span
	}{
		{"under max", 20000, 30000, []span{{0, 20000}}},
		{"exactly max", 30000, 30000, []span{{0, 30000}}},
		{"just over", 30001, 30000, []span{{0, 15000}, {15000, 30001}}},
		{"two and a half", 75000, 30000, []span{{0, 25000}, {25000, 50000}, {50000, 75000}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := splitSpans(tc.d, tc.max)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d spans (%v), want %d", len(got), got, len(tc.want))
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("span %d = %+v; want %+v", i, got[i], tc.want[i])
				}
			}
			// les sous-intervalles pavent [0, d) et restent sous max
			if got[0].startMs != 0 || got[len(got)-1].endMs != tc.d {
				t.Errorf("spans do not cover [0,%d): %v", tc.d, got)
			}
			for i := 1; i < len(got); i++ {
				if got[i].startMs != got[i-1].endMs {
					t.Errorf("gap between span %d and %d", i-1, i)
				}
			}
			for i, s := range got {
				if s.endMs-s.startMs > tc.max {
					t.Errorf("span %d exceeds max: %d ms", i, s.endMs-s.startMs)
				}
			}
		})
	}
}

func TestStepClock_AdvancesOncePerChunk(t *testing.T) {
	// chunk scindé en 2 : l'horloge n'avance que de d + keepSilence,
	// pas une fois par sous-chunk
	clock, spans := stepClock(10000, 40000, 500, 30000)
	if clock != 50500 {
		t.Errorf("clock = %d; want 50500", clock)
	}
	want := []span{{10000, 30000}, {30000, 50000}}
	if len(spans) != 2 || spans[0] != want[0] || spans[1] != want[1] {
		t.Errorf("spans = %v; want %v", spans, want)
	}
}

func TestStepClock_KeepSilenceDrift(t *testing.T) {
	// dérive documentée : keep_silence est rajouté à l'horloge après chaque
	// chunk naturel, les chunks suivants démarrent donc plus tard que leur
	// position réelle dans la source
	clock := int64(0)
	var all []span

	for _, d := range []int64{1500, 1500} {
		var spans []span
		clock, spans = stepClock(clock, d, 500, 30000)
		all = append(all, spans...)
	}

	want := []span{{0, 1500}, {2000, 3500}}
	if len(all) != 2 || all[0] != want[0] || all[1] != want[1] {
		t.Errorf("spans = %v; want %v", all, want)
	}
	if clock != 4000 {
		t.Errorf("final clock = %d; want 4000", clock)
	}
}

func TestSilenceBasedSegment(t *testing.T) {
	track := toneSilenceTone(1000, 1500)
	dir := t.TempDir()

	seg := &SilenceBased{
		MinSilenceMs:  1000,
		ThresholdDb:   -40,
		KeepSilenceMs: 500,
		MaxChunkMs:    30000,
	}
	segments, err := seg.Segment(context.Background(), track, dir)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}

	// timeline reconstruite : chunk 0 en [0,1500), horloge -> 2000,
	// chunk 1 en [2000,3500)
	want := []Segment{
		{StartMs: 0, EndMs: 1500},
		{StartMs: 2000, EndMs: 3500},
	}
	for i, s := range segments {
		if s.StartMs != want[i].StartMs || s.EndMs != want[i].EndMs {
			t.Errorf("segment %d = [%d,%d); want [%d,%d)",
				i, s.StartMs, s.EndMs, want[i].StartMs, want[i].EndMs)
		}
		got, err := LoadWAV(s.Path)
		if err != nil {
			t.Fatalf("reload segment %d: %v", i, err)
		}
		if got.DurationMs() != s.DurationMs() {
			t.Errorf("segment %d: file %d ms, nominal %d ms", i, got.DurationMs(), s.DurationMs())
		}
	}
}

func TestSilenceBasedSegment_SplitsLongChunk(t *testing.T) {
	// ton continu de 3 s, pas de silence, max 1 s -> k = 4 sous-chunks
	track := toneTrack(3000, 8000)
	dir := t.TempDir()

	seg := &SilenceBased{
		MinSilenceMs:  1000,
		ThresholdDb:   -40,
		KeepSilenceMs: 500,
		MaxChunkMs:    1000,
	}
	segments, err := seg.Segment(context.Background(), track, dir)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segments) != 4 {
		t.Fatalf("got %d segments, want 4", len(segments))
	}
	if segments[0].StartMs != 0 || segments[len(segments)-1].EndMs != 3000 {
		t.Errorf("segments do not cover [0,3000): %v", segments)
	}
	for i := 1; i < len(segments); i++ {
		if segments[i].StartMs != segments[i-1].EndMs {
			t.Errorf("gap between segment %d and %d", i-1, i)
		}
	}
}
