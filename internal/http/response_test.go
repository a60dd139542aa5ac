//go:build !integration

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/guttosm/cargo-loader/internal/i18n"
	"github.com/guttosm/cargo-loader/internal/middleware"
	"github.com/guttosm/cargo-loader/internal/service"
)

func newBuilderContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/test", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	middleware.RequestID()(c)
	return c, w
}

func TestResponseBuilder_Success(t *testing.T) {
	tests := []struct {
		name       string
		send       func(*ResponseBuilder)
		statusCode int
		location   string
	}{
		{
			name:       "ok",
			send:       func(b *ResponseBuilder) { b.SuccessOK(map[string]int{"containers": 2}) },
			statusCode: http.StatusOK,
		},
		{
			name:       "created",
			send:       func(b *ResponseBuilder) { b.Created("/api/load-plans/p1", map[string]int{"containers": 2}) },
			statusCode: http.StatusCreated,
			location:   "/api/load-plans/p1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newBuilderContext(http.MethodPost, "")

			tt.send(NewResponseBuilder(c))

			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
			var resp dto.SuccessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, map[string]interface{}{"containers": float64(2)}, resp.Data)
			assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), resp.RequestID)
			assert.NotZero(t, resp.Timestamp)
		})
	}
}

func TestResponseBuilder_Error(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		key          string
		err          error
		expectedCode string
		expectedMsg  string
	}{
		{
			name:         "bad request body",
			statusCode:   http.StatusBadRequest,
			key:          i18n.ErrKeyInvalidRequestBody,
			err:          errors.New("unexpected EOF"),
			expectedCode: dto.ErrCodeInvalidRequest,
			expectedMsg:  "Invalid request body",
		},
		{
			name:         "upload too large",
			statusCode:   http.StatusRequestEntityTooLarge,
			key:          i18n.ErrKeyFileTooLarge,
			expectedCode: dto.ErrCodeInvalidRequest,
			expectedMsg:  "The uploaded file is too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newBuilderContext(http.MethodPost, "")

			NewResponseBuilder(c).Error(tt.statusCode, tt.key, tt.err)

			assert.Equal(t, tt.statusCode, w.Code)
			assert.True(t, c.IsAborted())
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.Equal(t, tt.expectedMsg, resp.Message)
			assert.NotEmpty(t, resp.RequestID)
			if tt.err != nil {
				assert.Len(t, c.Errors, 1)
			}
		})
	}
}

func TestResponseBuilder_Fail(t *testing.T) {
	var verrs dto.ValidationErrors
	verrs.Add("cargo", "at least one cargo line is required")

	tests := []struct {
		name       string
		err        error
		statusCode int
		details    map[string]string
	}{
		{name: "validation", err: verrs, statusCode: http.StatusUnprocessableEntity, details: verrs.Details()},
		{name: "not found", err: service.ErrPlanNotFound, statusCode: http.StatusNotFound},
		{name: "unknown", err: errors.New("boom"), statusCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newBuilderContext(http.MethodGet, "")

			NewResponseBuilder(c).Fail(tt.err)

			assert.Equal(t, tt.statusCode, w.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.details, resp.Details)
			assert.NotContains(t, w.Body.String(), "boom")
		})
	}
}

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     bool
		wantDetails map[string]string
	}{
		{name: "valid body", body: `{"auto":true,"cargo":[{"name":"box","length":10,"width":10,"height":10,"weight":1,"count":1}]}`},
		{name: "malformed body", body: `{"auto":`, wantErr: true},
		{name: "wrong type", body: `{"cargo":"many"}`, wantErr: true},
		{
			name:        "missing cargo",
			body:        `{"auto":true}`,
			wantErr:     true,
			wantDetails: map[string]string{"cargo": "is required"},
		},
		{
			name:    "rules inside cargo lines",
			body:    `{"auto":true,"cargo":[{"name":"box","length":-1,"width":10,"height":10,"weight":-2,"count":1,"extension":1.5}]}`,
			wantErr: true,
			wantDetails: map[string]string{
				"cargo[0].length":    "must not be negative",
				"cargo[0].weight":    "must not be negative",
				"cargo[0].extension": "must be at most 1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newBuilderContext(http.MethodPost, tt.body)

			req, err := BuildRequest[dto.LoadPlanRequest](c)

			if tt.wantErr {
				require.Error(t, err)
				var verrs dto.ValidationErrors
				if tt.wantDetails == nil {
					assert.False(t, errors.As(err, &verrs), "decode errors are not field errors")
					return
				}
				require.ErrorAs(t, err, &verrs)
				assert.Equal(t, tt.wantDetails, verrs.Details())
				return
			}
			require.NoError(t, err)
			assert.True(t, req.Auto)
			assert.Len(t, req.Cargo, 1)
		})
	}
}
