package yt

import (
	"encoding/json"
	"fmt"
)

// ytdlpOutput représente la sortie JSON brute retournée par yt-dlp pour une vidéo.
// Seuls les champs utiles au pipeline sont mappés ; le reste du JSON est ignoré.
type ytdlpOutput struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Uploader   string  `json:"uploader"`
	UploadDate string  `json:"upload_date"`
	Timestamp  int64   `json:"timestamp"` // en Unix epoch
	Duration   float64 `json:"duration"`  // en secondes
}

// ExtractedRaw contient le JSON raw, une liste de lignes d'avertissements
type ExtractedRaw struct {
	JSON     []byte
	Warnings []string
}

// PrettyJSON retourne un json indenté
func (r *ExtractedRaw) PrettyJSON() ([]byte, error) {
	var obj any
	if err := json.Unmarshal(r.JSON, &obj); err != nil {
		return nil, err
	}
	return json.MarshalIndent(obj, "", "  ")
}

// PrintWarnings affiche les avertissements de yt-dlp
func (r *ExtractedRaw) PrintWarnings() {
	if len(r.Warnings) == 0 {
		return
	}
	fmt.Println("⚠️  Avertissements yt-dlp :")
	for _, w := range r.Warnings {
		fmt.Printf("  - %s\n", w)
	}
}

// YtDlp représente la commande yt-dlp à exécuter (nom de binaire ou chemin) + args.
type YtDlp struct {
	Name   string
	Path   string // chemin vers l'exe
	Config YtDlpConfig
}

func (y YtDlp) ShowPath() {
	if y.Path == "" {
		fmt.Println("yt-dlp path: (recherche dans le PATH)")
		return
	}
	fmt.Println("yt-dlp path:", y.Path)
}
