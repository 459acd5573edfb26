package logger

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey struct{}

var base = zap.NewNop()

// Init builds the process-wide logger. APP_ENV=production switches to the
// JSON production config.
func Init(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	base = l
	return nil
}

// L returns the process-wide logger.
func L() *zap.Logger {
	return base
}

// FromCtx returns the request-scoped logger, falling back to the global one.
func FromCtx(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return base
}

// WithCtx stores l on ctx for FromCtx.
func WithCtx(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// Middleware attaches a request-scoped logger (with a request id) to the
// request context and logs request completion.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		l := base.With(
			zap.String("request_id", uuid.NewString()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Request = c.Request.WithContext(WithCtx(c.Request.Context(), l))

		c.Next()

		l.Info("request completed",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
