package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestCodeString(t *testing.T) {
	if ErrorCodeDuplicateKey.String() != "duplicate_key" {
		t.Fatalf("String = %q", ErrorCodeDuplicateKey.String())
	}
	if ErrorCode(500).String() != "code(500)" {
		t.Fatalf("unknown String = %q", ErrorCode(500).String())
	}
}

func TestErrorRendering(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}

	root := stderrs.New("disk full")
	err := Wrapf(root, ErrorCodeDB, "create case %s", "C-001")
	if got := err.Error(); got != "create case C-001: disk full" {
		t.Fatalf("Wrapf render = %q", got)
	}
	if stderrs.Unwrap(err) != root {
		t.Fatalf("Unwrap lost the cause")
	}

	labelled := WithOp(err, "cases.CreateNextCase")
	if got := labelled.Error(); got != "cases.CreateNextCase: create case C-001: disk full" {
		t.Fatalf("WithOp render = %q", got)
	}
	if err.Error() == labelled.Error() {
		t.Fatalf("WithOp must copy, not mutate")
	}
}

func TestCodeOfAndAs(t *testing.T) {
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown {
		t.Fatalf("foreign error should be Unknown")
	}
	if IsCode(nil, ErrorCodeUnknown) {
		t.Fatalf("nil error must not match any code")
	}
	err := NotFoundf("case %q", "x")
	if !IsCode(err, ErrorCodeNotFound) {
		t.Fatalf("IsCode NotFound failed")
	}
	f := WithField(InvalidArgf("bad"), "pattern")
	e, ok := As(f)
	if !ok || e.Field() != "pattern" || e.Code() != ErrorCodeInvalidArgument {
		t.Fatalf("WithField = %+v", e)
	}
	plain := stderrs.New("x")
	if WithField(plain, "y") != plain || WithOp(plain, "y") != plain {
		t.Fatalf("foreign errors must pass through")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v", w)
	}
	w := WireFrom(Wrap(stderrs.New("secret dsn"), ErrorCodeDB, "store failed"))
	if w.Code != ErrorCodeDB || w.Message != "store failed" {
		t.Fatalf("WireFrom = %+v", w)
	}
	w = WireFrom(stderrs.New("boom"))
	if w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("WireFrom foreign = %+v", w)
	}
	st, w := HTTP(Conflictf("case full"))
	if st != http.StatusConflict || w.Code != ErrorCodeConflict {
		t.Fatalf("HTTP = %d %+v", st, w)
	}
}

func TestWrapIf(t *testing.T) {
	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
	if !IsCode(WrapIf(stderrs.New("x"), ErrorCodeDB, "y"), ErrorCodeDB) {
		t.Fatalf("WrapIf code lost")
	}
}

func TestFromStoreKeepsCodes(t *testing.T) {
	if FromStore(nil, "x") != nil {
		t.Fatalf("FromStore(nil) should be nil")
	}
	if !IsCode(FromStore(NotFoundf("gone"), "load"), ErrorCodeNotFound) {
		t.Fatalf("coded errors keep their code")
	}
	if !IsCode(FromStore(stderrs.New("io"), "load"), ErrorCodeDB) {
		t.Fatalf("foreign errors become DB")
	}
	if !IsCode(FromStoref(pg("23505", "", ""), "insert %s", "case"), ErrorCodeDuplicateKey) {
		t.Fatalf("pg unique violation should map to DuplicateKey")
	}
}
