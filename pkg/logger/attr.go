package logger

import (
	"log/slog"
	"strconv"
)

// Attr helpers keep log field names consistent across the codebase; call
// sites never spell "tenant_id" by hand. Helpers taking nullable input
// return the zero Attr for nil, which slog discards.

// Error records a single error under "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors", indexed by position.
func Errors(errs ...error) slog.Attr {
	group := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			group = append(group, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(group) == 0 {
		return slog.Attr{}
	}
	return Group("errors", group...)
}

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// TenantID records the tenant under "tenant_id".
func TenantID(id any) slog.Attr { return field("tenant_id", id) }

// UserID records the acting user under "user_id".
func UserID(id any) slog.Attr { return field("user_id", id) }

// Role records a principal role under "role".
func Role(role any) slog.Attr { return field("role", role) }

// RequestID records the correlation id under "request_id".
func RequestID(id any) slog.Attr { return field("request_id", id) }

func field(key string, v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.Any(key, v)
}
