package response

import (
	"net/http"

	"github.com/dealerdesk/dealerdesk-api/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// The legacy invoice surface always answers HTTP 200 and reports the logical
// outcome in the body: callers inspect the "error" flag and, on failure, the
// operation tag of each message entry. Kept for compatibility with deployed
// clients; the v1 surface uses real status codes instead.

// LegacyError is one entry of the legacy error list.
type LegacyError struct {
	Operation string      `json:"operation"`
	Message   interface{} `json:"message"`
}

// LegacyEnvelope is the legacy response body.
type LegacyEnvelope struct {
	Error   bool          `json:"error"`
	Message []LegacyError `json:"message,omitempty"`
	Data    interface{}   `json:"data,omitempty"`
}

// LegacyOK sends {error:false, data:...}. Pass nil to omit the data field
// entirely (the update contract echoes nothing back).
func LegacyOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, LegacyEnvelope{
		Error: false,
		Data:  data,
	})
}

// LegacyFail sends {error:true} with a single tagged message.
func LegacyFail(c *gin.Context, operation string, message interface{}) {
	c.JSON(http.StatusOK, LegacyEnvelope{
		Error:   true,
		Message: []LegacyError{{Operation: operation, Message: message}},
	})
}

// LegacyFailErr classifies err into the legacy taxonomy and sends it.
// Untagged errors surface as "unknown" with the underlying message.
func LegacyFailErr(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	op := appErr.Op
	if op == "" {
		op = apperror.OpUnknown
	}
	LegacyFail(c, op, appErr.Message)
}
