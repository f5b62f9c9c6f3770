package app

import (
	"time"

	"sheetstore/domain/tabular"
	"sheetstore/ports"
)

// decodeStored rebuilds the read-side view from a raw stored document.
// Values arrive as whatever the store adapter normalized them to, so the
// accessors below tolerate the usual shape drift ([]any vs []string,
// int64 vs int).
func decodeStored(id string, doc ports.Document) *tabular.StoredTable {
	headers := asStringSlice(doc["headers"])
	rows := tabular.DecodeRows(headers, asDocSlice(doc["rowsData"]))
	return &tabular.StoredTable{
		ID:         id,
		FileName:   asString(doc["fileName"]),
		Headers:    headers,
		Rows:       rows,
		RowCount:   asInt(doc["rowCount"]),
		UploadedAt: asTime(doc["uploadedAt"]),
		UpdatedAt:  asTime(doc["updatedAt"]),
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float64:
		return int(t)
	}
	return 0
}

func asTime(v any) time.Time {
	t, _ := v.(time.Time)
	return t
}

func asStringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, asString(e))
		}
		return out
	}
	return nil
}

func asDocSlice(v any) []map[string]any {
	switch t := v.(type) {
	case []map[string]any:
		return t
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, e := range t {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}
