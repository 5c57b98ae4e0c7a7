package httpx

import (
	"errors"
	"net/http"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// RespondError maps domain sentinels to RFC7807 responses. Unknown errors
// collapse to a bare 500 so internals never leak to the client.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
	case errors.Is(err, shared.ErrNoSession):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "no active session")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
