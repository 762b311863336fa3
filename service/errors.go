package service

import (
	"errors"

	"credit-pricing/domain"
)

func asValidationError(err error) (*domain.ValidationError, bool) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
