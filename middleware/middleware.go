package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/delivery"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/base/metrics"
	"github.com/tokenmart/goapi/domain"
)

// GoMiddleware represent the data-struct for middleware
type GoMiddleware struct {
	// another stuff , may be needed by middleware
}

// InitMiddleware initialize the middleware
func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{}
}

// CORS will handle the CORS middleware
func (m *GoMiddleware) CORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		return next(c)
	}
}

// AddContext adds custom context into echo
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			cont := ctx.WithValue(ctx.Background(), "requestID", c.Response().Header().Get(echo.HeaderXRequestID))
			c.Set("ctx", cont)
			return next(c)
		}
	}
}

// ResponseLogger logs response for every request
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	met := metrics.New("http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer met.BumpTime("request.time", "method", c.Request().Method, "path", c.Path()).End()

			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			fields := log.Fields{
				"ms":         time.Since(start).Seconds() * 1000,
				"httpStatus": c.Response().Status,
				"host":       req.Host,
				"remoteIP":   c.RealIP(),
				"uri":        c.Request().URL.Path,
				"httpMethod": c.Request().Method,
				"size":       res.Size,
				"userAgent":  req.UserAgent(),
				"referer":    c.Request().Header.Get("Referer"),
			}

			n := res.Status
			switch {
			case n >= 400:
				fields["nextErr"] = err
			default:
			}

			c.Get("ctx").(ctx.Ctx).WithFields(fields).Info("response")
			return nil
		}
	}
}

// IsValidAccountId rejects requests whose path param is not an account id
func IsValidAccountId(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			if !domain.AccountId(c.Param(param)).IsValid() {
				return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid account id")
			}
			return next(c)
		}
	}
}
