package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rollbar/rollbar-go"

	"edulink/internal/config"
)

// ContextKeyReportedError holds an error a handler wants sent to the error tracker.
const ContextKeyReportedError = "reported_error"

// InitRollbar configures the global Rollbar notifier. Reporting stays disabled
// when no token is set.
func InitRollbar(cfg *config.RollbarConfig) {
	rollbar.SetToken(cfg.Token)
	rollbar.SetEnvironment(cfg.Environment)
	rollbar.SetCodeVersion(cfg.CodeVersion)
	rollbar.SetServerRoot("edulink")
	rollbar.SetEnabled(cfg.Enabled())
}

// ReportError marks err for reporting once the request completes.
func ReportError(c *gin.Context, err error) {
	c.Set(ContextKeyReportedError, err)
}

// Reporter sends 5xx errors and recovered panics to Rollbar.
func Reporter() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				rollbar.RequestErrorWithExtras(rollbar.CRIT, c.Request, fmt.Errorf("panic: %v", rec), requestExtras(c))
				panic(rec)
			}
		}()

		c.Next()

		val, ok := c.Get(ContextKeyReportedError)
		if !ok || c.Writer.Status() < http.StatusInternalServerError {
			return
		}
		if err, isErr := val.(error); isErr {
			rollbar.RequestErrorWithExtras(rollbar.ERR, c.Request, err, requestExtras(c))
		}
	}
}

func requestExtras(c *gin.Context) map[string]interface{} {
	extras := map[string]interface{}{"route": c.FullPath()}
	if id, ok := c.Get("request_id"); ok {
		extras["request_id"] = id
	}
	if userID, ok := c.Get(ContextKeyUserID); ok {
		extras["user_id"] = fmt.Sprint(userID)
	}
	return extras
}
