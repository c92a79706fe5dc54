package errhandler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hearthstack/hearth/logging"
	"github.com/hearthstack/hearth/monitoring"
)

// Recovery creates a Gin middleware routing panics and handler errors to
// the manager's active handler instead of crashing the process. The
// logger and metrics collector are optional.
func Recovery(m *Manager, logger *logging.Logger, metrics *monitoring.Metrics) gin.HandlerFunc {
	if logger == nil {
		logger = logging.NewNop()
	}

	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", r)
				}

				logger.Error("Recovered panic during request handling",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
					zap.Stack("stack"),
				)
				if metrics != nil {
					metrics.RecordPanic()
				}

				render(m, c, err)
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			render(m, c, c.Errors.Last().Err)
		}
	}
}

func render(m *Manager, c *gin.Context, err error) {
	if handler := m.Active(); handler != nil {
		handler.Handle(c, err)
		return
	}
	c.AbortWithStatus(http.StatusInternalServerError)
}
