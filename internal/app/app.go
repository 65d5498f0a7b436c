package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickprogramme/autosub/internal/audio"
	"github.com/patrickprogramme/autosub/internal/config"
	"github.com/patrickprogramme/autosub/internal/lang"
	"github.com/patrickprogramme/autosub/internal/sarvam"
	"github.com/patrickprogramme/autosub/internal/srt"
	"github.com/patrickprogramme/autosub/internal/transcript"
	"github.com/patrickprogramme/autosub/internal/ui"
	"github.com/patrickprogramme/autosub/internal/yt"
)

const (
	defaultUpdateTimeout   = 15 * time.Second
	defaultExtractTimeout  = 2 * time.Minute
	defaultDownloadTimeout = 10 * time.Minute
	filePerm               = 0o644
)

// CLIFlags contient les information venant des flags de l'app
type CLIFlags struct {
	ConfigPath string
	URL        string
	Language   string
	Auto       bool
	YtDlpPath  string
}

// App orchestre les différentes dépendances (UI, YtDlp, découpage, API...)
type App struct {
	cfg      *config.Config
	ui       ui.Interface
	flags    *CLIFlags
	ytClient yt.Interface // **présent** : client yt-dlp initialisé dans Run
}

// New construit l'application en initialisant les dépendances par défaut.
// Pour les tests, on préférera construire App en injectant des implémentations mock.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags) *App {
	return &App{
		cfg:   cfg,
		ui:    uiClient,
		flags: flags,
	}
}

// Run exécute le flux principal : URL -> métadonnées -> audio -> segments
// -> transcripts -> fichier .srt. Il initialise ytClient (via InitYtDlp) en
// utilisant le ctx, l'initialisation respecte donc annulation/signaux.
func (a *App) Run(ctx context.Context) error {
	// validation de la config avant toute interaction
	warnings, err := a.cfg.Validate()
	for _, w := range warnings {
		a.ui.PrintError(ctx, "warning: "+w)
	}
	if err != nil {
		return fmt.Errorf("configuration invalide : %w", err)
	}

	// Récupération de l'URL : priorité flag > clipboard > prompt
	url := a.flags.URL
	if url == "" {
		if a.cfg.AutoMode {
			return fmt.Errorf("mode auto : l'URL doit être fournie via -url")
		}
		u, err := a.ui.GetYtURL(ctx)
		if err != nil {
			return fmt.Errorf("get url: %w", err)
		}
		url = u
	}
	if !yt.IsYouTubeURL(url) {
		return fmt.Errorf("URL YouTube invalide : %s", url)
	}

	// Langue de la source : priorité flag > menu interactif.
	// En mode auto sans flag, on transcrit sans indice de langue.
	language := lang.Unknown
	switch {
	case a.flags.Language != "":
		language = lang.Normalize(a.flags.Language)
	case !a.cfg.AutoMode:
		l, err := a.ui.GetLanguage(ctx)
		if err != nil {
			return fmt.Errorf("get language: %w", err)
		}
		language = l
	}

	// si l'utilisateur a passé --yt-dlp-path, l'appliquer et re-resoudre
	if a.flags.YtDlpPath != "" {
		a.cfg.YtDlp.Path = a.flags.YtDlpPath
		a.cfg.ResolveYtDlpPath()
	}

	// Init yt-dlp (CheckBinary + version)
	dl, version, err := yt.InitYtDlp(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("yt init: %w", err)
	}
	a.ytClient = dl

	// Update check (optionnel)
	if a.cfg.YtDlp.AutoUpdateCheck {
		if err := a.YtDlpUpdateCheck(ctx, defaultUpdateTimeout, version); err != nil {
			a.ui.PrintError(ctx, err.Error())
		}
	}

	// Extraction des métadonnées
	exCtx, exCancel := context.WithTimeout(ctx, defaultExtractTimeout)
	defer exCancel()

	raw, err := a.ytClient.ExtractRaw(exCtx, url)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("opération annulée")
		}
		return fmt.Errorf("extract raw: %w", err)
	}
	if a.cfg.YtDlp.ShowWarnings {
		raw.PrintWarnings()
	}

	// parse métadonnées
	meta, err := yt.ParseYTDLP(raw.JSON)
	if err != nil {
		return fmt.Errorf("parse ytdlp: %w", err)
	}
	a.ui.PrintInfo(ctx, meta.Pretty())

	// plafonnage de durée (politique de l'appelant, pas du pipeline)
	if err := checkSourceDuration(meta, a.cfg.MaxSourceDurationS); err != nil {
		return err
	}

	// dossiers de travail propres + purge des anciens .srt
	if err := a.prepareWorkspace(ctx); err != nil {
		return err
	}

	// téléchargement et extraction audio
	dlCtx, dlCancel := context.WithTimeout(ctx, defaultDownloadTimeout)
	defer dlCancel()

	a.ui.PrintInfo(ctx, "Extraction de l'audio (WAV 16 kHz mono)...")
	audioPath, err := a.ytClient.DownloadAudio(dlCtx, url, a.cfg.AudioDir())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("opération annulée")
		}
		return fmt.Errorf("download audio: %w", err)
	}

	// décodage + découpage en segments
	track, err := audio.LoadWAV(audioPath)
	if err != nil {
		return fmt.Errorf("décodage audio: %w", err)
	}

	segmenter, err := segmenterFromConfig(a.cfg.Segmentation)
	if err != nil {
		return err
	}
	segments, err := segmenter.Segment(ctx, track, a.cfg.ChunksDir())
	if err != nil {
		return fmt.Errorf("découpage audio: %w", err)
	}
	if len(segments) == 0 {
		return fmt.Errorf("découpage audio: aucun segment produit")
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("%d segment(s) à transcrire.", len(segments)))

	// transcription : les échecs par segment deviennent des placeholders,
	// jamais une erreur fatale
	client := sarvam.New(a.cfg.Sarvam)
	collector := transcript.NewCollector(client, a.cfg.Sarvam.Workers)
	entries := collector.Collect(ctx, segments, lang.Prompt(language))

	// assemblage et sauvegarde du document SubRip
	doc := srt.Assemble(entries, a.cfg.MaxLineChars)
	outPath, err := SaveSubtitles(doc, a.cfg.OutputDir, meta.Title)
	if err != nil {
		return err
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("Sous-titres écrits dans :\n%s", outPath))

	if a.cfg.AutoMode {
		return nil
	}
	// Attendre terminaison (Ctrl+C) via UI
	return a.ui.WaitForExit(ctx)
}
