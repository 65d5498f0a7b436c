// Package transcript collecte les transcripts de tous les segments d'une
// piste, dans l'ordre, en substituant un placeholder aux échecs.
package transcript

// Placeholder : texte substitué quand la transcription d'un segment échoue.
// Littéral figé, il apparaît tel quel dans le fichier de sous-titres.
const Placeholder = "[Unintelligible]"

// Entry associe un transcript à l'intervalle nominal de son segment.
// Jamais modifiée après création ; l'assembleur de sous-titres fait
// confiance à l'ordre d'émission et ne re-trie pas.
type Entry struct {
	StartMs int64
	EndMs   int64
	Text    string
}
