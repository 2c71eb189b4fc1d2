package content

import (
	"careertest/internal/model"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError lists every problem found in a content bundle.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("invalid content: %s", e.Errors[0])
	}
	return fmt.Sprintf("invalid content: %d problems: %v", len(e.Errors), e.Errors)
}

func (e *ValidationError) add(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// Validate checks the structural rules a bundle must satisfy before scoring
// can rely on it.
func Validate(b *model.ContentBundle) error {
	verr := &ValidationError{}
	if b == nil {
		verr.add("bundle is nil")
		return verr
	}

	if len(b.Questions) == 0 {
		verr.add("question bank is empty")
	}

	seen := make(map[string]bool, len(b.Questions))
	for i, q := range b.Questions {
		if err := validate.Struct(q); err != nil {
			addFieldErrors(verr, fmt.Sprintf("questions[%d]", i), err)
		}
		if q.ID != "" && seen[q.ID] {
			verr.add("questions[%d]: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = true
	}

	byDim := make(map[model.Dimension]bool, len(b.Profiles))
	for i, p := range b.Profiles {
		if err := validate.Struct(p); err != nil {
			addFieldErrors(verr, fmt.Sprintf("profiles[%d]", i), err)
		}
		if p.Dimension == "" {
			continue
		}
		if !p.Dimension.Valid() {
			verr.add("profiles[%d]: unknown dimension %q", i, p.Dimension)
			continue
		}
		if byDim[p.Dimension] {
			verr.add("profiles[%d]: duplicate profile for %s", i, p.Dimension)
		}
		byDim[p.Dimension] = true
	}
	for _, d := range model.Dimensions {
		if !byDim[d] {
			verr.add("missing profile for dimension %s", d)
		}
	}

	if len(verr.Errors) > 0 {
		return verr
	}
	return nil
}

func addFieldErrors(verr *ValidationError, prefix string, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("%s: %v", prefix, err)
		return
	}
	for _, fe := range fieldErrs {
		verr.add("%s: %s failed %q", prefix, fe.Namespace(), fe.Tag())
	}
}
