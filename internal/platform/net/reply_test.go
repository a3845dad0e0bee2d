package net_test

import (
	"net/http"
	"testing"

	perr "caseline/internal/platform/errors"
	pnet "caseline/internal/platform/net"
)

func TestReply(t *testing.T) {
	cases := []struct {
		status int
		want   int
	}{
		{0, http.StatusOK},
		{http.StatusOK, http.StatusOK},
		{http.StatusCreated, http.StatusCreated},
		{http.StatusAccepted, http.StatusAccepted},
	}
	for _, c := range cases {
		w := pnet.Reply(c.status, []string{"C-001"}, "req-1")
		if w.StatusCode != c.want || w.Status != http.StatusText(c.want) {
			t.Fatalf("Reply(%d) status = %d %q", c.status, w.StatusCode, w.Status)
		}
		if w.RequestID != "req-1" {
			t.Fatalf("request id = %q", w.RequestID)
		}
		if got, ok := w.Data.([]string); !ok || got[0] != "C-001" {
			t.Fatalf("data = %#v", w.Data)
		}
		if w.Error != "" || w.Field != "" {
			t.Fatalf("success carries error fields: %+v", w)
		}
	}
}

func TestFailureNil(t *testing.T) {
	status, w := pnet.Failure(nil, "req-2")
	if status != http.StatusOK || w.StatusCode != http.StatusOK || w.Data != nil {
		t.Fatalf("Failure(nil) = %d %+v", status, w)
	}
}

func TestFailureMapsCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   perr.ErrorCode
		field  string
	}{
		{perr.NotFoundf("case c1"), http.StatusNotFound, perr.ErrorCodeNotFound, ""},
		{perr.WithField(perr.DuplicateKeyf("serial taken"), "serial"), http.StatusConflict, perr.ErrorCodeDuplicateKey, "serial"},
		{perr.WithField(perr.Validationf("orderId is required"), "orderId"), http.StatusBadRequest, perr.ErrorCodeValidation, "orderId"},
		{perr.WithField(perr.InvalidArgf("count exceeds room"), "count"), http.StatusUnprocessableEntity, perr.ErrorCodeInvalidArgument, "count"},
		{perr.Unavailablef("store down"), http.StatusServiceUnavailable, perr.ErrorCodeUnavailable, ""},
	}
	for _, c := range cases {
		status, w := pnet.Failure(c.err, "req-3")
		if status != c.status || w.StatusCode != c.status {
			t.Fatalf("%v: status = %d, want %d", c.err, status, c.status)
		}
		if w.Code != c.code || w.Field != c.field {
			t.Fatalf("%v: code/field = %q/%q", c.err, w.Code, w.Field)
		}
		if w.Error == "" || w.RequestID != "req-3" || w.Data != nil {
			t.Fatalf("%v: wire = %+v", c.err, w)
		}
	}
}
