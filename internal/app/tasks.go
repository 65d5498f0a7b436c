package app

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/patrickprogramme/autosub/internal/audio"
	"github.com/patrickprogramme/autosub/internal/config"
	"github.com/patrickprogramme/autosub/internal/fsutil"
	"github.com/patrickprogramme/autosub/internal/updater"
	"github.com/patrickprogramme/autosub/pkg/model"
)

// segmenterFromConfig sélectionne la variante de découpage d'après la
// stratégie configurée. Les appelants reçoivent l'interface, jamais la
// variante concrète.
func segmenterFromConfig(s config.Segmentation) (audio.Segmenter, error) {
	switch s.Strategy {
	case config.StrategySlidingWindow:
		return &audio.SlidingWindow{
			ChunkMs:   s.ChunkDurationMs,
			ContextMs: s.ContextDurationMs,
		}, nil
	case config.StrategySilence:
		return &audio.SilenceBased{
			MinSilenceMs:  s.MinSilenceMs,
			ThresholdDb:   s.SilenceThreshDb,
			KeepSilenceMs: s.KeepSilenceMs,
			MaxChunkMs:    s.MaxChunkMs,
		}, nil
	default:
		return nil, fmt.Errorf("stratégie de découpage inconnue : %q", s.Strategy)
	}
}

// checkSourceDuration applique le plafond de durée configuré. maxS <= 0
// désactive le plafond ; une durée inconnue passe (yt-dlp ne la fournit
// pas toujours, on préfère tenter plutôt que refuser).
func checkSourceDuration(m *model.Meta, maxS int64) error {
	if maxS <= 0 || !m.HasDuration() {
		return nil
	}
	if int64(m.Duration) > maxS {
		return fmt.Errorf("vidéo trop longue : %s (plafond %s)",
			m.Duration.TimestampHHMMSS(), model.Seconds(maxS).TimestampHHMMSS())
	}
	return nil
}

// prepareWorkspace vide les dossiers de travail (audio extrait, chunks) et
// purge les .srt d'une exécution précédente dans le dossier de sortie.
func (a *App) prepareWorkspace(ctx context.Context) error {
	for _, dir := range []string{a.cfg.AudioDir(), a.cfg.ChunksDir()} {
		if err := fsutil.ClearDir(dir); err != nil {
			return fmt.Errorf("préparation du dossier de travail: %w", err)
		}
	}

	// pas de purge quand la sortie est le répertoire courant
	if a.cfg.OutputDir == "." {
		return nil
	}
	removed, err := fsutil.RemoveFilesWithExt(a.cfg.OutputDir, ".srt")
	if err != nil {
		return fmt.Errorf("purge des anciens sous-titres: %w", err)
	}
	if len(removed) > 0 {
		a.ui.PrintInfo(ctx, fmt.Sprintf("%d ancien(s) fichier(s) .srt supprimé(s).", len(removed)))
	}
	return nil
}

// SaveSubtitles écrit le document SubRip dans outDir, sous le nom dérivé
// du titre de la vidéo, avec fsutil.WriteFileAtomic.
func SaveSubtitles(doc, outDir, title string) (string, error) {
	if doc == "" {
		return "", fmt.Errorf("SaveSubtitles: document vide")
	}

	name := fsutil.SanitizeFilename(title)
	path := filepath.Join(outDir, name+".srt")

	if werr := fsutil.WriteFileAtomic(path, []byte(doc), filePerm); werr != nil {
		return "", fmt.Errorf("write subtitles %s: %w", path, werr)
	}
	return path, nil
}

func (a *App) YtDlpUpdateCheck(ctx context.Context, timeout time.Duration, version string) error {
	uc, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	check, err := updater.CheckYtDlpUpdate(uc, version)
	if err != nil {
		return fmt.Errorf("vérification de mise à jour a échoué : %v", err)
	}

	if check.IsUpToDate {
		a.ui.PrintInfo(ctx, fmt.Sprintf("✅ yt-dlp est à jour (%s)", check.CurrentVersion))
		return nil
	}

	a.ui.PrintInfo(ctx, "⚠️ Nouvelle version de Yt-dlp disponible :")
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Installée : %s", check.CurrentVersion))
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Dernière  : %s", check.LatestRelease.TagName))
	a.ui.PrintInfo(ctx, "Téléchargez-la ici:")
	a.ui.PrintInfo(ctx, check.GetUpdateLink(runtime.GOOS))

	return nil
}
