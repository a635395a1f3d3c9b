package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/planetgame/internal/model"
)

func TestWriteErrorMapsEngineErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{model.ErrGameAlreadyStarted, http.StatusPaymentRequired, CodeAlreadyStarted},
		{model.ErrUnauthorized, http.StatusForbidden, CodeUnauthorized},
		{model.ErrNotOwner, http.StatusForbidden, CodeNotOwner},
		{model.ErrPlanetNotFound, http.StatusNotFound, CodePlanetNotFound},
		{model.ErrPlayerNotFound, http.StatusNotFound, CodePlayerNotFound},
		{model.ErrGameFull, http.StatusBadRequest, CodeGameFull},
		{model.ErrGameNotStarted, http.StatusBadRequest, CodeNotStarted},
		{model.ErrInvalidShipCount, http.StatusBadRequest, CodeInvalidShipCount},
		{fmt.Errorf("deploy: %w", model.ErrNotOwner), http.StatusForbidden, CodeNotOwner},
		{errors.New("redis down"), http.StatusInternalServerError, CodeInternalError},
		{NewInvalidRequestError("bad body"), http.StatusBadRequest, CodeInvalidRequest},
		{NewRateLimitedError(), http.StatusTooManyRequests, CodeRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestStatusForKind(t *testing.T) {
	assert.Equal(t, 402, StatusForKind(model.KindAlreadyStarted))
	assert.Equal(t, 403, StatusForKind(model.KindUnauthorized))
	assert.Equal(t, 404, StatusForKind(model.KindNotFound))
	assert.Equal(t, 403, StatusForKind(model.KindNotOwner))
	assert.Equal(t, 400, StatusForKind(model.KindValidation))
	assert.Equal(t, 500, StatusForKind(model.KindInternal))
}
