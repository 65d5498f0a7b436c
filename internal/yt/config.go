package yt

import "path/filepath"

// YtDlpConfig représente les flags ajoutables quand on utilise yt-dlp
type YtDlpConfig struct {
	NoWarnings bool // true => ajouter --no-warnings
	NoProgress bool
	NoUpdate   bool
	NoConfig   bool // true => ajouter --no-config pour ignorer les configs utilisateur
}

// NewYtDlpConfig initalise une configuration standard de yt-dlp, showWarning vient du yaml de config
func NewYtDlpConfig(showWarning bool) *YtDlpConfig {
	return &YtDlpConfig{
		NoWarnings: !showWarning,
		NoProgress: true,
		NoUpdate:   true,
		NoConfig:   true, // valeur par défaut : ignorer les fichiers de config extérieurs (plus prévisible)
	}
}

// commonArgs retourne les flags partagés par toutes les invocations.
func (c *YtDlpConfig) commonArgs() []string {
	args := make([]string, 0, 4)
	// mettre --no-config en tête pour éviter que des configs locales modifient le comportement
	if c.NoConfig {
		args = append(args, "--no-config")
	}
	if c.NoWarnings {
		args = append(args, "--no-warnings")
	}
	if c.NoProgress {
		args = append(args, "--no-progress")
	}
	if c.NoUpdate {
		args = append(args, "--no-update")
	}
	return args
}

// BuildMetadataArgs construit les arguments pour `yt-dlp -j` (métadonnées seules).
func (c *YtDlpConfig) BuildMetadataArgs(url string) []string {
	args := c.commonArgs()
	args = append(args, "-j", "--skip-download", "--no-playlist", url)
	return args
}

// BuildAudioArgs construit les arguments pour extraire la piste audio en WAV
// 16 kHz mono dans outDir. Le chemin final du fichier est imprimé sur stdout
// via --print after_move:filepath (d'où --no-simulate pour télécharger quand même).
func (c *YtDlpConfig) BuildAudioArgs(url, outDir string) []string {
	args := c.commonArgs()
	args = append(args,
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "wav",
		// 16 kHz mono : suffisant pour la parole, et chunks nettement plus légers
		"--postprocessor-args", "ffmpeg:-ar 16000 -ac 1",
		"--no-playlist",
		"--restrict-filenames",
		"--print", "after_move:filepath",
		"--no-simulate",
		"-o", filepath.Join(outDir, "%(title)s.%(ext)s"),
		url,
	)
	return args
}
