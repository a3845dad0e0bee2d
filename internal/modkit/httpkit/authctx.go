package httpkit

import (
	"net/http"

	perr "caseline/internal/platform/errors"
	pnet "caseline/internal/platform/net"
)

// User returns the authenticated user id
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}

// Org returns the organization the request is scoped to
func Org(r *http.Request) (string, error) {
	org := pnet.OrgID(r.Context())
	if org == "" {
		return "", perr.Forbiddenf("missing organization scope")
	}
	return org, nil
}
