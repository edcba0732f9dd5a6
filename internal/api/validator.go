package api

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	app_errors "zai-proxy/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Chat requests are checked against the `validate` tags on model.ChatRequest
// and model.IncomingMessage. Failures become 400 {"detail": ...} bodies that
// name each offending field by its path inside the request, for example
// "Field 'Messages[0].Role' failed on the 'required' tag".

var (
	validate *validator.Validate
	once     sync.Once
)

// getInstance returns the shared validator; it caches struct metadata.
func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// validateRequest wraps every tag failure of payload in
// app_errors.ErrValidation, joined with "; ".
func validateRequest(payload any) error {
	err := getInstance().Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", app_errors.ErrValidation, err)
	}

	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldPath(fe), fe.Tag())
	}
	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(msgs, "; "))
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}
