package service

import "fmt"

// User-facing messages returned by the storefront routes.
const (
	MsgIdeasFailed       = "Une erreur est survenue lors de la génération des idées. Veuillez réessayer."
	MsgMissingIdeaInput  = "Veuillez renseigner les ingrédients principaux et le type de cuisine."
	MsgIncompleteListing = "Veuillez remplir tous les champs avant de publier."
	searchFailedPrefix   = "Erreur de recherche : "
)

// GenerationError carries the message shown to the cook when idea
// generation fails, along with the underlying cause.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// SearchError carries the message shown to the shopper when a search fails.
type SearchError struct {
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	return e.Message
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

func newSearchError(err error) *SearchError {
	return &SearchError{Message: searchFailedPrefix + err.Error(), Err: err}
}

// ValidationError reports a rejected listing or request input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
