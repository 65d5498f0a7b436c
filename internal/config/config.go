package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/patrickprogramme/autosub/internal/assets"
	"github.com/patrickprogramme/autosub/internal/fsutil"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 1

// Noms de stratégie de découpage acceptés dans le yaml.
const (
	StrategySlidingWindow = "sliding_window"
	StrategySilence       = "silence"
)

// Segmentation regroupe les paramètres des deux stratégies de découpage.
// Les champs inutilisés par la stratégie active sont simplement ignorés.
type Segmentation struct {
	Strategy          string  `yaml:"strategy"`
	ChunkDurationMs   int64   `yaml:"chunk_duration_ms"`
	ContextDurationMs int64   `yaml:"context_duration_ms"`
	MinSilenceMs      int64   `yaml:"min_silence_ms"`
	SilenceThreshDb   float64 `yaml:"silence_threshold_db"`
	KeepSilenceMs     int64   `yaml:"keep_silence_ms"`
	MaxChunkMs        int64   `yaml:"max_chunk_duration_ms"`
}

// Sarvam : paramètres de l'API speech-to-text-translate.
type Sarvam struct {
	URL      string `yaml:"url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	TimeoutS int    `yaml:"timeout_s"`
	Workers  int    `yaml:"workers"`
}

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	OutputDir string `yaml:"output_dir"`
	WorkDir   string `yaml:"work_dir"` // contiendra audio/ et chunks/

	// Politique de l'appelant : durée max de la source (0 = pas de limite)
	MaxSourceDurationS int64 `yaml:"max_source_duration_s"`

	// Découpage audio
	Segmentation Segmentation `yaml:"segmentation"`

	// API de transcription
	Sarvam Sarvam `yaml:"sarvam"`

	// Sous-titres
	MaxLineChars int `yaml:"max_line_chars"`

	// Mode automatique (pas d'interaction : flags/valeurs par défaut uniquement)
	AutoMode bool `yaml:"auto_mode"`

	// yt-dlp
	YtDlp struct {
		Name            string `yaml:"name"`
		Path            string `yaml:"path"`
		ShowWarnings    bool   `yaml:"show_warnings"`
		AutoUpdateCheck bool   `yaml:"auto_update_check"`

		// ResolvedPath contient le chemin effectif vers l'exécutable
		ResolvedPath string `yaml:"-"`
	} `yaml:"yt_dlp"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	// Chemins
	c.OutputDir = "."
	c.WorkDir = "work"

	// Politique : 20 minutes max, comme le service original
	c.MaxSourceDurationS = 1200

	// Découpage
	c.Segmentation.Strategy = StrategySlidingWindow
	c.Segmentation.ChunkDurationMs = 7000
	c.Segmentation.ContextDurationMs = 2000
	c.Segmentation.MinSilenceMs = 1000
	c.Segmentation.SilenceThreshDb = -40
	c.Segmentation.KeepSilenceMs = 500
	c.Segmentation.MaxChunkMs = 30000

	// API
	c.Sarvam.URL = "https://api.sarvam.ai/speech-to-text-translate"
	c.Sarvam.APIKey = "" // vide => variable d'environnement SARVAM_KEY
	c.Sarvam.Model = "saaras:v1"
	c.Sarvam.TimeoutS = 60
	c.Sarvam.Workers = 1

	// Sous-titres : 42 caractères par ligne (valeur historique du projet)
	c.MaxLineChars = 42

	c.AutoMode = false

	// yt-dlp
	c.YtDlp.Name = "yt-dlp"
	c.YtDlp.Path = ""
	c.YtDlp.ShowWarnings = false
	c.YtDlp.AutoUpdateCheck = false

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = "autosub.yaml"
	}

	// si le fichier n'existe pas -> essayer de créer à partir de l'asset embarqué
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	// lire le YAML brut et déserialiser dans cfg (les champs présents écraseront les defaults)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// On déserialise dans cfg initialisé : les champs absents conservent les valeurs par défaut.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	return cfg, nil
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	// lire l'asset embarqué via assets.Embedded et DefaultConfigAsset
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}

	// s'assurer que le dossier parent existe
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("échec mkdir pour la configuration %s : %w", filepath.Dir(dstPath), err)
	}

	// écrire atomiquement sur disque (évite les fichiers partiels)
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}

	// log utile pour le debugging
	fmt.Printf("info : fichier de configuration par défaut créé : %s\n", dstPath)
	return nil
}

func (c *Config) normalizeConfig() {
	// Nettoyage des chemins
	c.OutputDir = filepath.Clean(c.OutputDir)
	c.WorkDir = filepath.Clean(c.WorkDir)

	c.Segmentation.Strategy = strings.TrimSpace(strings.ToLower(c.Segmentation.Strategy))
	if c.Segmentation.Strategy == "" {
		c.Segmentation.Strategy = StrategySlidingWindow
	}

	if c.MaxLineChars <= 0 {
		c.MaxLineChars = 42
	}
	if c.Sarvam.TimeoutS <= 0 {
		c.Sarvam.TimeoutS = 60
	}
	if c.Sarvam.Workers <= 0 {
		c.Sarvam.Workers = 1
	}

	// clé API : le yaml prime, sinon variable d'environnement
	c.Sarvam.APIKey = strings.TrimSpace(c.Sarvam.APIKey)
	if c.Sarvam.APIKey == "" {
		c.Sarvam.APIKey = strings.TrimSpace(os.Getenv("SARVAM_KEY"))
	}

	// centraliser la résolution/normalisation de yt-dlp
	c.ResolveYtDlpPath()
}

// AudioDir retourne le dossier de travail où yt-dlp dépose l'audio extrait.
func (c *Config) AudioDir() string {
	return filepath.Join(c.WorkDir, "audio")
}

// ChunksDir retourne le dossier de travail des chunks exportés.
func (c *Config) ChunksDir() string {
	return filepath.Join(c.WorkDir, "chunks")
}

// ResolveYtDlpPath normalise le nom et résout le chemin complet vers l'exécutable.
// Appeler après avoir modifié cfg.YtDlp.Name ou cfg.YtDlp.Path.
func (c *Config) ResolveYtDlpPath() {
	if c == nil {
		return
	}

	// Normaliser le nom et ajouter .exe sur Windows si nécessaire
	c.YtDlp.Name = strings.TrimSpace(c.YtDlp.Name)
	if c.YtDlp.Name == "" {
		c.YtDlp.Name = "yt-dlp"
	}

	// ajoute .exe si nécessaire
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.YtDlp.Name), ".exe") {
		c.YtDlp.Name = c.YtDlp.Name + ".exe"
	}

	// Résolution du chemin
	// si cfg.Path est vide -> on laisse vide, la recherche dans PATH sera tentée
	exeName := c.YtDlp.Name
	cfgPath := strings.TrimSpace(c.YtDlp.Path)
	if cfgPath == "" {
		c.YtDlp.ResolvedPath = ""
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// si le chemin fourni finit déjà par l'exécutable -> on l'utilise
	if filepath.Base(cleanPath) == exeName {
		c.YtDlp.ResolvedPath = cleanPath
	} else {
		// sinon on considère cfgPath comme un répertoire et on y joint l'exe
		c.YtDlp.ResolvedPath = filepath.Join(cleanPath, exeName)
	}
}
