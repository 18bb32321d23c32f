package validators

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const TagHHMM = "hhmm"

var registerOnce sync.Once

// Register installs the custom tags on gin's binding validator. Safe to
// call more than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin binding engine is not validator/v10")
			return
		}
		err = RegisterOn(v)
	})
	return err
}

func RegisterOn(v *validator.Validate) error {
	return v.RegisterValidation(TagHHMM, validateHHMM)
}

// validateHHMM accepts empty strings; pair it with required when needed.
func validateHHMM(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	return IsHHMM(value)
}

func IsHHMM(value string) bool {
	if len(value) != 5 {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

// FieldErrors flattens binding errors into field -> message for the
// response details.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "required"
		case TagHHMM:
			out[fe.Field()] = "expected HH:MM"
		default:
			out[fe.Field()] = fmt.Sprintf("failed on %s", fe.Tag())
		}
	}
	return out
}
