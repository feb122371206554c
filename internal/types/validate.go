package types

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// validate is shared by every request type. validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(postingSalaryRange, CreateJobPostingRequest{})
	return v
}

// ValidationMessage renders the first failed rule of a validator error as
// "validation error: <field> - <rule>". Other errors are returned as is.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Sprintf("validation error: %s - %s=%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("validation error: %s - %s", fe.Field(), fe.Tag())
	}
	return err.Error()
}
