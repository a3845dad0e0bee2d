package service

import (
	"regexp"
	"strconv"
	"sync"

	perr "caseline/internal/platform/errors"
	"caseline/internal/services/products/domain"
)

var patterns sync.Map // string -> *regexp.Regexp

// MatchPattern checks value against the schema's pattern; an empty pattern accepts anything
func MatchPattern(s domain.UnitSchema, value string) error {
	if s.Pattern == "" {
		return nil
	}
	re, err := compiled(s.Pattern)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("%s has an invalid pattern: %v", s.Name, err), s.Name)
	}
	if !re.MatchString(value) {
		return perr.WithField(perr.Validationf("%s did not match the product pattern", s.Name), s.Name)
	}
	return nil
}

func compiled(p string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(p); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return nil, err
	}
	patterns.Store(p, re)
	return re, nil
}

func itoa(i int) string { return strconv.Itoa(i) }
