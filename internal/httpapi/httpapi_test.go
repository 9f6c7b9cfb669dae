package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, err)
	return w
}

func TestRespondClientError(t *testing.T) {
	w := respond(t, BadRequest("AccountAlreadyExists", errors.New("duplicate email")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":{"kind":"AccountAlreadyExists"}}`, w.Body.String())
}

func TestRespondClientErrorsAreStable(t *testing.T) {
	// Two denials with different server-side detail must serialize to the
	// same bytes.
	first := respond(t, BadRequest("InvalidEmailOrPassword", errors.New("the account does not exist")))
	second := respond(t, BadRequest("InvalidEmailOrPassword", errors.New("invalid password")))

	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestRespondInternalError(t *testing.T) {
	w := respond(t, Internal(errors.New("redis down")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Error struct {
			Kind string `json:"kind"`
			UUID string `json:"uuid"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, KindInternal, body.Error.Kind)

	_, err := uuid.Parse(body.Error.UUID)
	assert.NoError(t, err, "5xx responses carry a correlation id")
	assert.NotContains(t, w.Body.String(), "redis down")
}

func TestRespondUntaggedErrorBecomesInternal(t *testing.T) {
	w := respond(t, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Internal(inner)

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "inner", err.Error())
	assert.Equal(t, KindUnauthenticated, ErrUnauthenticated.Kind)
}
