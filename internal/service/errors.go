// Package service provides the HBnB facade: the single entry point that
// translates domain operations into repository calls.
package service

import (
	"errors"

	"github.com/prn-tf/hbnb/internal/domain"
)

// Common service errors.
var (
	// ErrInternalError indicates an unexpected failure below the facade.
	ErrInternalError = errors.New("internal server error")
)

func notFound(kind, id string) error {
	return domain.NewDomainError(domain.ErrNotFound, kind+" not found", id)
}

func referenceNotFound(kind, id string) error {
	return domain.NewDomainError(domain.ErrReferenceNotFound, kind+" does not exist", id)
}

func stillReferenced(message, id string) error {
	return domain.NewDomainError(domain.ErrStillReferenced, message, id)
}
