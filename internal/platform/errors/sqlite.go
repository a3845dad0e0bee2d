package errors

import (
	stderrs "errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func extractSQLiteError(err error) (*sqlite.Error, bool) {
	var se *sqlite.Error
	if stderrs.As(err, &se) {
		return se, true
	}
	return nil, false
}

func isSQLiteUnique(err error) bool {
	se, ok := extractSQLiteError(err)
	if !ok {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// IsSQLiteBusy reports a locked or busy database
func IsSQLiteBusy(err error) bool {
	se, ok := extractSQLiteError(err)
	if !ok {
		return false
	}
	// extended codes carry the primary code in the low byte
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

// SQLiteErrorCode maps a modernc sqlite error to an ErrorCode; !ok when err is not one
func SQLiteErrorCode(err error) (ErrorCode, bool) {
	se, ok := extractSQLiteError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch {
	case isSQLiteUnique(err):
		return ErrorCodeDuplicateKey, true
	case se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT:
		return ErrorCodeValidation, true
	case IsSQLiteBusy(err):
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}
