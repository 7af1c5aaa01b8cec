package colors

import (
	"strings"

	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
)

func validateFields(name, value string) error {
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if value == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "value is required")
	}
	if !strings.HasPrefix(value, "#") {
		return pkgerrors.New(pkgerrors.CodeValidation, "value must be a hex color code")
	}
	return nil
}
