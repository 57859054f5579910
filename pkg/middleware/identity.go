package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"ticket-ledger/pkg/address"
	"ticket-ledger/pkg/utils"
)

// CallerIdentityHeader carries the caller's base58 identity address.
// Proof of that identity (signature verification) happens upstream of
// this service; here the address is only parsed and compared.
const CallerIdentityHeader = "X-Caller-Identity"

// Identity middleware extracts the caller identity and places it on the
// request context for the handlers.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(CallerIdentityHeader)
			if raw == "" {
				utils.ResponseUnauthorized(w, "Missing caller identity")
				return
			}

			caller, err := address.Parse(raw)
			if err != nil {
				logger.Warn("Invalid caller identity",
					zap.String("identity", raw),
					zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid caller identity")
				return
			}

			ctx := utils.SetCallerContext(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
