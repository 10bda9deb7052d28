package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/lumibook/booking-service/internal/api/handlers"
)

type contextKey string

// staffIDKey ключ контекста для ID сотрудника из заголовка X-Staff-ID
const staffIDKey contextKey = "staffID"

const msgMissingStaffID = "требуется заголовок X-Staff-ID"

// Auth проверяет наличие корректного заголовка X-Staff-ID и кладет ID
// сотрудника в контекст запроса. Сама аутентификация выполняется снаружи
// (API gateway), сервис доверяет заголовку.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Staff-ID")
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingStaffID)
			return
		}

		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingStaffID)
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffIDFromContext возвращает ID сотрудника, положенный Auth middleware
func StaffIDFromContext(ctx context.Context) (int64, bool) {
	staffID, ok := ctx.Value(staffIDKey).(int64)
	return staffID, ok
}
