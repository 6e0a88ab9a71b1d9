package transport

import (
	"net/http"

	"github.com/goliatone/go-clouds/core"
	goerrors "github.com/goliatone/go-errors"
)

// failure builds the error envelope of a request the adapter could not
// complete. The HTTP code and text code follow from category. A nil cause
// yields a fresh error.
func failure(cause error, category goerrors.Category, message string, metadata map[string]any) error {
	var err *goerrors.Error
	if cause == nil {
		err = goerrors.New(message, category)
	} else {
		err = goerrors.Wrap(cause, category, message)
	}
	code, textCode := http.StatusInternalServerError, core.CloudErrorInternal
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		code, textCode = http.StatusBadRequest, core.CloudErrorBadInput
	case goerrors.CategoryExternal:
		code, textCode = http.StatusBadGateway, core.CloudErrorTransportFailed
	}
	err = err.WithCode(code).WithTextCode(textCode)
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["adapter"] = KindREST
	return err.WithMetadata(metadata)
}
