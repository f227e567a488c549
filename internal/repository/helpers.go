package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already contains") ||
		strings.Contains(errStr, "already exists")
}

// convertSurrealID converts a SurrealDB ID (which may be a complex object) to a string
func convertSurrealID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
	case map[string]interface{}:
		// {"tb": "waitlist_signup", "id": {"String": "abc"}} and similar
		tb := getString(v, "tb")
		if tb == "" {
			tb = getString(v, "Table")
		}
		idPart := ""
		if idVal, ok := v["id"]; ok {
			idPart = extractIDValue(idVal)
		} else if idVal, ok := v["ID"]; ok {
			idPart = extractIDValue(idVal)
		}
		if tb != "" && idPart != "" {
			return tb + ":" + idPart
		}
		if idPart != "" {
			return idPart
		}
	}
	return fmt.Sprintf("%v", id)
}

// extractIDValue extracts the ID value which may be nested
func extractIDValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		if s, ok := m["String"].(string); ok {
			return s
		}
		if s, ok := m["string"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// statementRows returns the records produced by statement i of a multi-statement query
func statementRows(results []interface{}, i int) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0)
	if i < 0 || i >= len(results) {
		return rows
	}
	resp, ok := results[i].(map[string]interface{})
	if !ok {
		return rows
	}
	switch data := resp["result"].(type) {
	case []interface{}:
		for _, item := range data {
			if m, ok := item.(map[string]interface{}); ok {
				rows = append(rows, m)
			}
		}
	case map[string]interface{}:
		rows = append(rows, data)
	}
	return rows
}

// extractCount extracts count from a `SELECT count() AS count ... GROUP ALL` record
func extractCount(result interface{}) int {
	if data, ok := result.(map[string]interface{}); ok {
		return extractCountValue(data["count"])
	}
	return 0
}

// extractCountValue converts various numeric types to int
func extractCountValue(v interface{}) int {
	switch c := v.(type) {
	case float64:
		return int(c)
	case float32:
		return int(c)
	case int:
		return c
	case int64:
		return int(c)
	case uint64:
		return int(c)
	}
	return 0
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getInt extracts a numeric value from a map
func getInt(m map[string]interface{}, key string) int {
	return extractCountValue(m[key])
}

// getTime extracts a time value from a map
func getTime(m map[string]interface{}, key string) *time.Time {
	switch v := m[key].(type) {
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return &t
		}
	case time.Time:
		return &v
	case models.CustomDateTime:
		t := v.Time
		return &t
	case *models.CustomDateTime:
		if v != nil {
			t := v.Time
			return &t
		}
	}
	return nil
}
