package helper

import (
	"errors"
	"reflect"
	"strings"

	"attendku_backend/internals/helpers/apperror"

	"github.com/go-playground/validator/v10"
)

// FieldErrors mengubah validator.ValidationErrors jadi map field → tag.
// Nama field diambil dari tag json (lihat NewValidator).
func FieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = []string{"invalid input"}
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], fe.Tag())
	}
	return out
}

// NewValidator: validator dengan nama field mengikuti tag json/form.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Validate menjalankan validator dan mengembalikan apperror validasi bila gagal.
func Validate(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		return apperror.ValidationFields(FieldErrors(err))
	}
	return nil
}
