package http

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/guttosm/cargo-loader/internal/i18n"
	"github.com/guttosm/cargo-loader/internal/middleware"
)

// envelopePool recycles response envelopes. gin encodes synchronously, so an
// envelope can be released as soon as the response is written.
type envelopePool[T any] struct {
	pool sync.Pool
}

func (p *envelopePool[T]) get() *T {
	if v, ok := p.pool.Get().(*T); ok {
		return v
	}
	return new(T)
}

func (p *envelopePool[T]) put(v *T) {
	var zero T
	*v = zero
	p.pool.Put(v)
}

var (
	successEnvelopes envelopePool[dto.SuccessResponse]
	errorEnvelopes   envelopePool[dto.ErrorResponse]
)

// ResponseBuilder writes the API's success and error envelopes.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for c.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends data wrapped in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := successEnvelopes.get()
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	b.c.JSON(statusCode, resp)
	successEnvelopes.put(resp)
}

// SuccessOK sends a 200 OK response.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// Created sends a 201 Created response pointing at location.
func (b *ResponseBuilder) Created(location string, data interface{}) {
	if location != "" {
		b.c.Header("Location", location)
	}
	b.Success(http.StatusCreated, data)
}

// Error sends an error response with the translated message for messageKey.
// err, when not nil, is attached to the context for the error handler to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	resp := errorEnvelopes.get()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	errorEnvelopes.put(resp)
}

// Fail renders a service error with the status StatusForError maps it to.
// Validation errors keep their per-field details.
func (b *ResponseBuilder) Fail(err error) {
	_ = b.c.Error(err)
	b.c.AbortWithStatusJSON(middleware.StatusForError(err), middleware.ErrorResponseFor(b.c, err))
}

// BindFailed renders an error returned by BuildRequest: broken binding
// rules are a 422 with field details, anything else a malformed body.
func (b *ResponseBuilder) BindFailed(err error) {
	var verrs dto.ValidationErrors
	if errors.As(err, &verrs) {
		b.Fail(verrs)
		return
	}
	b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}

// BuildRequest binds the JSON body into a new T and checks its binding
// rules. Rule violations come back as dto.ValidationErrors.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, dto.FromBindingError(err)
	}
	return &req, nil
}
