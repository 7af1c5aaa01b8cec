package sizes

import (
	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
)

func validateFields(name, value string) error {
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if value == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "value is required")
	}
	return nil
}
