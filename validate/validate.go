// Package validate contains custom validation functions
package validate

import (
	"github.com/ebsys/gateway/enums"
	"github.com/go-playground/validator/v10"
)

// RevokeConfirmation is a custom validation function that is used to check the
// typed confirmation phrase required before a credential revocation
func RevokeConfirmation(fl validator.FieldLevel) bool {
	return fl.Field().String() == enums.RevokePhrase
}
