package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader é o header usado para propagar o id da requisição
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey guarda o id da requisição no contexto do Gin
	RequestIDContextKey = "request_id"
	// BaseURLContextKey guarda a URL base usada nos tipos RFC 7807
	BaseURLContextKey = "base_url"
)

// RequestID reaproveita o X-Request-ID recebido ou gera um novo
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDContextKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

// BaseURL disponibiliza a URL base da API para as respostas de erro
func BaseURL(baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(BaseURLContextKey, baseURL)
		c.Next()
	}
}
