package middleware

import (
	"nandhub_backend/internal/service"

	"github.com/gin-gonic/gin"
)

const localeKey = "locale"

// PopulateLocale resolves the optional locale query parameter,
// falling back to the default for unsupported or absent values.
func PopulateLocale() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(localeKey, service.LocaleOrDefault(c.Query("locale")))
		c.Next()
	}
}

func GetLocale(c *gin.Context) string {
	if v, exists := c.Get(localeKey); exists {
		if locale, ok := v.(string); ok {
			return locale
		}
	}
	return service.DefaultLocale
}
