package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/capframe/capframe-backend/internal/domain/importing"
)

// RespondImportError translates the import error taxonomy into HTTP status
// codes. Errors without an import code fall through as 500s.
func RespondImportError(c *gin.Context, err error) {
	code := importing.CodeOf(err)
	switch code {
	case importing.CodeMalformedInput, importing.CodeValidation:
		RespondError(c, http.StatusBadRequest, string(code), err)
	case importing.CodeUnsupportedFormat:
		RespondError(c, http.StatusUnprocessableEntity, string(code), err)
	case importing.CodeNotFound:
		RespondError(c, http.StatusNotFound, string(code), err)
	case importing.CodeConflict:
		RespondError(c, http.StatusConflict, string(code), err)
	case importing.CodeRetryable:
		RespondError(c, http.StatusServiceUnavailable, string(code), err)
	case importing.CodePersistence, importing.CodeInternal:
		RespondError(c, http.StatusInternalServerError, string(code), err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
