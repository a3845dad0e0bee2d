package service

import "caseline/internal/platform/net/http/bind"

func init() {
	err := bind.RegisterValidation("idpattern", func(fl bind.FieldLevel) bool {
		return ValidPattern(fl.Field().String())
	}, "{0} must contain a date token or a # run")
	if err != nil {
		panic(err)
	}
}
