package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openoralcare/oralhealth-backend/internal/cache"
)

type cachedWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *cachedWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}

// CacheResponse serves GET responses from the cache when present and
// stores successful JSON responses on miss. The key is the full request
// URI, so query parameters produce distinct entries. A nil cache makes
// this a pass-through.
func CacheResponse(store cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := "resp:" + c.Request.URL.RequestURI()
		if body, ok := store.Get(c.Request.Context(), key); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}
		w := &cachedWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()
		if c.Writer.Status() == http.StatusOK && w.buf.Len() > 0 {
			store.Set(c.Request.Context(), key, w.buf.Bytes(), ttl)
		}
	}
}
