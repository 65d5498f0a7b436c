// Package sarvam encapsule l'API distante speech-to-text-translate de
// Sarvam : un POST multipart par segment audio, pas de relance.
package sarvam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickprogramme/autosub/internal/config"
)

// borne de lecture du corps de réponse (l'API renvoie quelques Ko de JSON)
const maxResponseBytes = 1 << 20

// Interface permet de substituer un client factice dans les tests du
// collecteur de transcripts.
type Interface interface {
	Transcribe(ctx context.Context, audioPath, prompt string) (string, error)
}

// Client est le client HTTP de l'API Sarvam.
type Client struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
}

var _ Interface = (*Client)(nil)

// New construit un client à partir de la configuration. Le timeout couvre
// l'appel entier (connexion + envoi + réponse).
func New(cfg config.Sarvam) *Client {
	return &Client{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutS) * time.Second,
		},
	}
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Transcribe envoie un segment audio à l'API et retourne le transcript
// traduit. prompt est l'indice de langue, vide pour laisser l'API deviner.
// Aucune relance : tout échec remonte immédiatement à l'appelant, qui
// décide de la politique de récupération.
func (c *Client) Transcribe(ctx context.Context, audioPath, prompt string) (string, error) {
	mimeType, err := mimeForFile(audioPath)
	if err != nil {
		return "", err
	}

	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("ouverture du segment %s impossible : %w", audioPath, err)
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	// champ file : l'API exige un nom de fichier et un type MIME explicites
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`,
			quoteEscaper.Replace(filepath.Base(audioPath))))
	hdr.Set("Content-Type", mimeType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		return "", fmt.Errorf("construction du corps multipart impossible : %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("lecture du segment %s impossible : %w", audioPath, err)
	}

	if err := w.WriteField("model", c.model); err != nil {
		return "", fmt.Errorf("construction du corps multipart impossible : %w", err)
	}
	if prompt != "" {
		if err := w.WriteField("prompt", prompt); err != nil {
			return "", fmt.Errorf("construction du corps multipart impossible : %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalisation du corps multipart impossible : %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return "", fmt.Errorf("construction de la requête impossible : %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("api-subscription-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var parsed response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &MalformedResponseError{Reason: fmt.Sprintf("corps JSON illisible : %v", err)}
	}
	if parsed.Transcript == nil {
		return "", &MalformedResponseError{Reason: "champ transcript absent"}
	}
	return *parsed.Transcript, nil
}
