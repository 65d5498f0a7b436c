package yt

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// NewYtDlp construit une instance. Path doit être le chemin résolu vers l'exe
// (vide => recherche dans le PATH au moment de l'exécution).
func NewYtDlp(name string, resolvedPath string, cfg YtDlpConfig) *YtDlp {
	return &YtDlp{
		Name:   name,
		Path:   resolvedPath,
		Config: cfg,
	}
}

// exe retourne la commande effective : chemin résolu ou nom (PATH).
func (y *YtDlp) exe() string {
	if y.Path != "" {
		return y.Path
	}
	return y.Name
}

// CheckBinary vérifie que le binaire spécifié existe et est exécutable.
// Si aucun chemin n'est résolu, on tente une recherche dans le PATH.
func (y *YtDlp) CheckBinary() error {
	if y == nil {
		return fmt.Errorf("yt-dlp non initialisé")
	}

	if y.Path == "" {
		if _, err := exec.LookPath(y.Name); err != nil {
			return fmt.Errorf("yt-dlp introuvable dans le PATH (%s) : %w", y.Name, err)
		}
		return nil
	}

	info, err := os.Stat(y.Path)
	if err != nil {
		return fmt.Errorf("yt-dlp introuvable (%s) à l'emplacement spécifié : %v", y.Path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("le chemin spécifié pour yt-dlp est un répertoire, pas un fichier exécutable")
	}

	return nil
}

// ExtractRaw exécute `yt-dlp -j <url>` et renvoie la sortie JSON brute.
// La sortie est validée comme JSON avant d'être renvoyée.
func (y *YtDlp) ExtractRaw(ctx context.Context, url string) (*ExtractedRaw, error) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		fmt.Printf("Métadonnées extraites en %s\n", elapsed)
	}()

	args := y.Config.BuildMetadataArgs(url)

	cmd := exec.CommandContext(ctx, y.exe(), args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp dump json failed: %w, output: %s", err, string(out))
	}

	var jsonLine string
	var warnings []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") || strings.HasPrefix(line, "[") {
			jsonLine = line // si plusieurs lignes JSON, prendre la dernière
		} else {
			warnings = append(warnings, line)
		}
	}
	if jsonLine == "" {
		return nil, fmt.Errorf("aucun JSON détecté dans la sortie: %s", string(out))
	}
	return &ExtractedRaw{
		JSON:     []byte(jsonLine),
		Warnings: warnings,
	}, nil
}

// DownloadAudio extrait la piste audio en WAV 16 kHz mono dans outDir.
// Le chemin du fichier final vient de --print after_move:filepath : on prend
// la dernière ligne de stdout se terminant par ".wav".
func (y *YtDlp) DownloadAudio(ctx context.Context, url, outDir string) (string, error) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		fmt.Printf("Audio extrait en %s\n", elapsed)
	}()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create audio dir %s: %w", outDir, err)
	}

	args := y.Config.BuildAudioArgs(url, outDir)

	cmd := exec.CommandContext(ctx, y.exe(), args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("yt-dlp audio download failed: %w, output: %s", err, string(out))
	}

	var audioPath string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(strings.ToLower(line), ".wav") {
			audioPath = line
		}
	}
	if audioPath == "" {
		return "", fmt.Errorf("aucun chemin .wav détecté dans la sortie yt-dlp: %s", string(out))
	}

	// vérification finale : le fichier doit exister
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("fichier audio annoncé mais introuvable (%s) : %w", audioPath, err)
	}
	return audioPath, nil
}
