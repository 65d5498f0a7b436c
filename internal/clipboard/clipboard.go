package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ReadAll lit le contenu texte du presse-papier.
// Retourne une chaîne de caractères et une erreur éventuelle.
func ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return text, nil
}

// WriteAll écrit une chaîne de caractères dans le presse-papier.
// Retourne une erreur si l'opération échoue.
func WriteAll(text string) error {
	if text == "" {
		return errors.New("le texte à copier ne peut pas être vide")
	}
	return clipboard.WriteAll(text)
}
