package sarvam

// réponse JSON de l'API speech-to-text-translate.
// Transcript est un pointeur pour distinguer le champ absent (réponse
// malformée) d'un transcript vide (réponse valide).
type response struct {
	Transcript   *string `json:"transcript"`
	LanguageCode string  `json:"language_code"`
}
