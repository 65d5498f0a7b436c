package ui

import (
	"context"
)

type Interface interface {
	// GetYtURL doit renvoyer une URL valide.
	// Implémentation terminale : priorité clipboard -> prompt
	GetYtURL(ctx context.Context) (string, error)

	// GetLanguage affiche le menu numéroté des langues et retourne le choix
	// (une entrée de lang.Options). Saisie invalide -> lang.Unknown.
	GetLanguage(ctx context.Context) (string, error)

	// WaitForExit bloque jusqu'à ce qu'un signal d'annulation soit reçu via ctx (Ctrl+C).
	WaitForExit(ctx context.Context) error

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)
}
