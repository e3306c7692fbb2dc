package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

// LoggerConfig controls request logging behavior
type LoggerConfig struct {
	EnableColors bool
	SkipPaths    []string
}

func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		EnableColors: true,
		SkipPaths:    []string{"/health", "/ping"},
	}
}

func Logger() gin.HandlerFunc {
	return LoggerWithConfig(DefaultLoggerConfig())
}

func LoggerWithConfig(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		for _, skipPath := range config.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		method := c.Request.Method
		ip := c.ClientIP()
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		var methodColor, statusColor, resetColor string
		if config.EnableColors {
			methodColor = getMethodColor(method)
			statusColor = getStatusColor(status)
			resetColor = ColorReset
		}

		if query != "" {
			path = path + "?" + query
		}

		log.Printf("%s%s%s %s%s%s %s[%d]%s %v %s",
			methodColor, method, resetColor,
			ColorBlue, path, resetColor,
			statusColor, status, resetColor,
			latency, ip)

		// Surface handler-recorded errors on failed requests
		if status >= 400 && len(c.Errors) > 0 {
			log.Printf("%s    errors:%s %s", ColorGray, resetColor, c.Errors.String())
		}
	}
}

func getMethodColor(method string) string {
	switch method {
	case "GET":
		return ColorGreen
	case "POST":
		return ColorBlue
	case "PUT":
		return ColorYellow
	case "DELETE":
		return ColorRed
	case "PATCH":
		return ColorPurple
	default:
		return ColorWhite
	}
}

func getStatusColor(status int) string {
	switch {
	case status >= 200 && status < 300:
		return ColorGreen
	case status >= 300 && status < 400:
		return ColorCyan
	case status >= 400 && status < 500:
		return ColorYellow
	case status >= 500:
		return ColorRed
	default:
		return ColorWhite
	}
}
