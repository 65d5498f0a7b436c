package config

import (
	"errors"
	"fmt"
)

var ErrMissingAPIKey = errors.New("clé API Sarvam absente (yaml sarvam.api_key ou variable SARVAM_KEY)")

// Validate vérifie la cohérence des paramètres avant de lancer le pipeline.
// Retourne warnings (non-fataux) et une erreur si c'est critique.
func (c *Config) Validate() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	if c.Sarvam.APIKey == "" {
		return warnings, ErrMissingAPIKey
	}
	if c.Sarvam.URL == "" {
		return warnings, fmt.Errorf("sarvam.url vide")
	}
	if c.Sarvam.Model == "" {
		return warnings, fmt.Errorf("sarvam.model vide")
	}

	switch c.Segmentation.Strategy {
	case StrategySlidingWindow:
		if c.Segmentation.ChunkDurationMs <= 0 {
			return warnings, fmt.Errorf("segmentation.chunk_duration_ms doit être > 0 (lu : %d)",
				c.Segmentation.ChunkDurationMs)
		}
		if c.Segmentation.ContextDurationMs < 0 {
			return warnings, fmt.Errorf("segmentation.context_duration_ms doit être >= 0 (lu : %d)",
				c.Segmentation.ContextDurationMs)
		}
	case StrategySilence:
		if c.Segmentation.MinSilenceMs <= 0 {
			return warnings, fmt.Errorf("segmentation.min_silence_ms doit être > 0 (lu : %d)",
				c.Segmentation.MinSilenceMs)
		}
		if c.Segmentation.MaxChunkMs <= 0 {
			return warnings, fmt.Errorf("segmentation.max_chunk_duration_ms doit être > 0 (lu : %d)",
				c.Segmentation.MaxChunkMs)
		}
		if c.Segmentation.KeepSilenceMs < 0 {
			return warnings, fmt.Errorf("segmentation.keep_silence_ms doit être >= 0 (lu : %d)",
				c.Segmentation.KeepSilenceMs)
		}
		if c.Segmentation.SilenceThreshDb >= 0 {
			warnings = append(warnings,
				fmt.Sprintf("segmentation.silence_threshold_db %.1f dBFS >= 0 : tout sera considéré silencieux",
					c.Segmentation.SilenceThreshDb))
		}
	default:
		return warnings, fmt.Errorf("segmentation.strategy inconnue : %q (attendu %q ou %q)",
			c.Segmentation.Strategy, StrategySlidingWindow, StrategySilence)
	}

	if c.MaxSourceDurationS < 0 {
		warnings = append(warnings, "max_source_duration_s négatif : traité comme 0 (pas de limite)")
		c.MaxSourceDurationS = 0
	}

	return warnings, nil
}
