// Package httperr translates ledger error kinds into Huma status errors so
// every handler maps failures the same way.
package httperr

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/errs"
)

// From wraps err in a huma error whose status matches the error kind. The
// msg is the client-facing summary; the underlying error is attached as a
// detail.
func From(err error, msg string) error {
	switch errs.KindOf(err) {
	case errs.Validation:
		return huma.NewError(http.StatusBadRequest, msg, err)
	case errs.NotFound:
		return huma.NewError(http.StatusNotFound, msg, err)
	case errs.MalformedSnapshot:
		return huma.NewError(http.StatusUnprocessableEntity, msg, err)
	default:
		return huma.NewError(http.StatusInternalServerError, msg, err)
	}
}
