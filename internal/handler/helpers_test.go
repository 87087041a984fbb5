package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"edulink/internal/domain"
	"edulink/internal/handler"
	"edulink/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := handler.SetupValidation(); err != nil {
		panic(err)
	}
}

func setActorContext(c *gin.Context, actor domain.Actor) {
	c.Set(middleware.ContextKeyUserID, actor.UserID)
	c.Set(middleware.ContextKeyRole, string(actor.Role))
	c.Set(middleware.ContextKeyProfileID, actor.ProfileID)
}

func ecoleActor() domain.Actor {
	return domain.Actor{UserID: uuid.New(), Role: domain.RoleEcole, ProfileID: uuid.New()}
}

func intervenantActor() domain.Actor {
	return domain.Actor{UserID: uuid.New(), Role: domain.RoleIntervenant, ProfileID: uuid.New()}
}

func adminActor() domain.Actor {
	return domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
}

// newJSONContext builds a test context carrying body as JSON; a nil body sends none.
func newJSONContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, _ := json.Marshal(b)
			reader = bytes.NewReader(raw)
		}
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, path, reader)
	if reader != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
