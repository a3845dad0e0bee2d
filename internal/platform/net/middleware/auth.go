package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "caseline/internal/platform/errors"
	"caseline/internal/platform/logger"
	pnet "caseline/internal/platform/net"
	phttp "caseline/internal/platform/net/http"
)

// AuthPort resolves the caller of a request
type AuthPort interface {
	// Parse returns the user id and the organization the user acts for
	Parse(r *http.Request) (userID, orgID string, err error)
}

// Principal is one entry of a static token table
type Principal struct {
	Token  string
	UserID string
	OrgID  string
}

// StaticTokens authenticates bearer tokens against a fixed table
type StaticTokens []Principal

// TokensFromTuples builds a table from token,user,org triples as produced by config.MayTuples
func TokensFromTuples(rows [][]string) StaticTokens {
	out := make(StaticTokens, 0, len(rows))
	for _, r := range rows {
		if len(r) == 3 {
			out = append(out, Principal{Token: r[0], UserID: r[1], OrgID: r[2]})
		}
	}
	return out
}

// Parse implements AuthPort
func (s StaticTokens) Parse(r *http.Request) (string, string, error) {
	h := r.Header.Get("Authorization")
	tok, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || tok == "" {
		return "", "", perr.Unauthorizedf("missing bearer token")
	}
	for _, p := range s {
		if subtle.ConstantTimeCompare([]byte(p.Token), []byte(tok)) == 1 {
			return p.UserID, p.OrgID, nil
		}
	}
	return "", "", perr.Unauthorizedf("unknown token")
}

// Auth resolves the caller through p and stores user and organization on the context.
// A nil port leaves requests untouched. Requests that resolve to no organization are
// rejected since every document access is tenant scoped
func Auth(p AuthPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, org, err := p.Parse(r)
			if err == nil && org == "" {
				err = perr.Forbiddenf("user %s belongs to no organization", uid)
			}
			if err != nil {
				phttp.RespondError(w, r, err)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid)
			ctx = pnet.WithRequest(ctx, "", org)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), org)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
