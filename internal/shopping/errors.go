package shopping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dukerupert/shoplisl/internal/docstore"
)

var (
	// ErrNotFound is returned by mutations that reference a missing list or
	// article.
	ErrNotFound = docstore.ErrNotFound

	ErrDuplicateName = errors.New("duplicate article name")
	ErrArticleActive = errors.New("article is active in lists")
	ErrInvalid       = errors.New("invalid input")
)

// DuplicateNameError reports a create or rename that would give two
// articles the same normalized name.
type DuplicateNameError struct {
	Name       string
	ExistingID string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("an article named %q already exists", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// ArticleActiveInListsError reports a delete refused because the article is
// still unchecked on some lists.
type ArticleActiveInListsError struct {
	ArticleID string
	ListNames []string
}

func (e *ArticleActiveInListsError) Error() string {
	return fmt.Sprintf("article is still active in: %s", strings.Join(e.ListNames, ", "))
}

func (e *ArticleActiveInListsError) Is(target error) bool { return target == ErrArticleActive }

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// StoreUnavailableError wraps a failure of the document store.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: store unavailable: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// storeErr passes domain errors through and wraps everything else.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrArticleActive) || errors.Is(err, ErrInvalid) {
		return err
	}
	return &StoreUnavailableError{Op: op, Err: err}
}

// resultLabel classifies err for the operations metric.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrDuplicateName):
		return "duplicate"
	case errors.Is(err, ErrArticleActive):
		return "active"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalid):
		return "invalid"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
