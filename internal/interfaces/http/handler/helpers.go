package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxPageSize caps every limit/per_page query parameter
const MaxPageSize = 100

// queryInt reads an integer query parameter, returning def when absent or malformed
func queryInt(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// pageParams reads page and the first present limit key. Pages below 1 become 1;
// limits below 1 fall back to def and are capped at MaxPageSize.
func pageParams(c *gin.Context, def int, limitKeys ...string) (page, limit int) {
	page = max(queryInt(c, "page", 1), 1)
	limit = def
	for _, key := range limitKeys {
		if _, ok := c.GetQuery(key); ok {
			limit = queryInt(c, key, def)
			break
		}
	}
	if limit < 1 {
		limit = def
	}
	return page, min(limit, MaxPageSize)
}

// limitParam reads a bare limit, with the same fallback and cap as pageParams
func limitParam(c *gin.Context, def int) int {
	_, limit := pageParams(c, def, "limit")
	return limit
}

// optionalUUIDQuery parses an optional UUID query parameter. ok is false only
// when the value is present and malformed.
func optionalUUIDQuery(c *gin.Context, key string) (id *uuid.UUID, ok bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}
