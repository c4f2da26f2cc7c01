package server

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func RequestTime() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			reqTime := time.Since(start)
			logrus.Infof("request time: %v %v: %v", c.Request().Method, c.Request().URL.Path, reqTime)
			return err
		}
	}
}
