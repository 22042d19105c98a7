package api

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"PharmalyticsSaas/api/auth"
	"PharmalyticsSaas/api/constants"
	"PharmalyticsSaas/internal/config"
)

// GetSessionFromCtx returns the validated session attached by middleware.
func GetSessionFromCtx(ctx context.Context) *auth.UserSession {
	if session, ok := ctx.Value(SessionKey).(*auth.UserSession); ok {
		return session
	}
	return nil
}

func GetUserIDFromCtx(ctx context.Context) string {
	if session := GetSessionFromCtx(ctx); session != nil {
		return session.UserID
	}
	return ""
}

// IsContractorAllowed reports whether the session may read data for the
// given contractor code.
func IsContractorAllowed(ctx context.Context, contractorCode string) bool {
	codes := GetContractorCodesFromCtx(ctx)
	if len(codes) == 0 {
		return false
	}
	codeUpper := strings.ToUpper(strings.TrimSpace(contractorCode))
	for _, c := range codes {
		if strings.ToUpper(strings.TrimSpace(c)) == codeUpper {
			return true
		}
	}
	return false
}

// ContractorAccessMiddleware validates the session user_id carried in the
// request body and attaches the contractor codes that user may access.
func ContractorAccessMiddleware(pgxPool *pgxpool.Pool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var userID string
			ct := r.Header.Get(constants.ContentTypeText)
			if strings.HasPrefix(ct, constants.ContentTypeJSON) && (r.Method == "POST" || r.Method == "PUT") {
				var bodyMap map[string]interface{}
				_ = json.NewDecoder(r.Body).Decode(&bodyMap)
				if uid, ok := bodyMap[constants.KeyUserID].(string); ok {
					userID = uid
				}
				// Re-marshal and reset body for downstream handlers
				bodyBytes, _ := json.Marshal(bodyMap)
				r.Body = io.NopCloser(strings.NewReader(string(bodyBytes)))
			} else if strings.HasPrefix(ct, constants.ContentTypeMultipart) && (r.Method == "POST" || r.Method == "PUT") {
				err := r.ParseMultipartForm(config.MaxUploadBytes)
				if err == nil {
					userID = r.FormValue(constants.KeyUserID)
				}
			}

			if userID == "" {
				log.Println("[ERROR] Missing user_id in request")
				w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
				json.NewEncoder(w).Encode(map[string]interface{}{
					constants.ValueSuccess: false,
					constants.ValueError:   constants.ErrMissingUserID,
				})
				return
			}

			// Validate session
			var session *auth.UserSession
			for _, s := range auth.GetActiveSessions() {
				if s.UserID == userID {
					session = s
					break
				}
			}
			if session == nil {
				log.Println("[ERROR] Invalid session for user_id:", userID)
				w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
				json.NewEncoder(w).Encode(map[string]interface{}{
					constants.ValueSuccess: false,
					constants.ValueError:   constants.ErrInvalidSession,
				})
				return
			}

			// Load contractor codes granted to the user. Admins see every
			// active contractor.
			var contractorCodes []string
			var rows pgx.Rows
			var err error
			if strings.EqualFold(session.Role, "admin") {
				rows, err = pgxPool.Query(r.Context(), `
					SELECT contractor_code FROM pharmacy_contractors
					WHERE is_active = true
					ORDER BY contractor_code`)
			} else {
				rows, err = pgxPool.Query(r.Context(), `
					SELECT pc.contractor_code
					FROM pharmacy_contractors pc
					JOIN user_contractor_access uca ON uca.contractor_id = pc.id
					WHERE uca.user_id = $1 AND pc.is_active = true
					ORDER BY pc.contractor_code`, userID)
			}
			if err == nil {
				defer rows.Close()
				for rows.Next() {
					var code string
					if scanErr := rows.Scan(&code); scanErr == nil {
						contractorCodes = append(contractorCodes, code)
					}
				}
			} else {
				log.Printf("[WARN] contractor access query failed: %v", err)
			}

			if len(contractorCodes) == 0 {
				log.Printf("[ERROR] No accessible contractors for user_id: %s", userID)
				w.Header().Set(constants.ContentTypeText, constants.ContentTypeJSON)
				json.NewEncoder(w).Encode(map[string]interface{}{
					constants.ValueSuccess: false,
					constants.ValueError:   constants.ErrNoContractorAccess,
				})
				return
			}

			ctx := context.WithValue(r.Context(), ContractorCodesKey, contractorCodes)
			ctx = context.WithValue(ctx, UserNameKey, session.Name)
			ctx = context.WithValue(ctx, SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
