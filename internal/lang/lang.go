// Package lang regroupe les langues supportées par l'API et la construction
// du prompt d'assistance envoyé avec chaque chunk audio.
package lang

import "strings"

// Unknown : langue non précisée, le prompt n'indiquera pas de langue.
const Unknown = "Unknown"

// Options liste les langues proposées à l'utilisateur, dans l'ordre du menu.
// L'index dans la slice est le numéro à saisir (0 = Unknown).
var Options = []string{
	Unknown,
	"Hindi",
	"Telugu",
	"Malayalam",
	"Kannada",
	"Bengali",
	"Marathi",
	"Odia",
	"Punjabi",
	"Tamil",
	"English",
	"Gujarati",
}

// instruction système toujours présente dans le prompt
const basePrompt = "If unable to translate, then return [Unable to translate]"

// Normalize retrouve l'entrée canonique de Options correspondant à s
// (comparaison insensible à la casse). Inconnu -> Unknown.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	for _, opt := range Options {
		if strings.EqualFold(opt, s) {
			return opt
		}
	}
	return Unknown
}

// Prompt construit le texte d'assistance pour l'API de transcription.
// Pour Unknown on n'indique pas de langue, seulement l'instruction de base.
func Prompt(language string) string {
	language = Normalize(language)
	if language == Unknown {
		return basePrompt
	}
	return "This is a " + language + " language audio clip from a Youtube Video. " + basePrompt
}
