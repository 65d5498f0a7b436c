package sarvam

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat : extension hors de la liste blanche, le segment est
// rejeté localement sans appel réseau.
var ErrUnsupportedFormat = errors.New("format audio non supporté")

// TransportError : échec réseau ou timeout avant d'obtenir une réponse HTTP.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("erreur de transport : %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError : réponse non-2xx de l'API, avec le statut et le corps bruts
// pour le diagnostic.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("réponse HTTP %d : %s", e.Status, e.Body)
}

// MalformedResponseError : réponse 2xx mais corps illisible ou champ
// transcript absent.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("réponse malformée : %s", e.Reason)
}
