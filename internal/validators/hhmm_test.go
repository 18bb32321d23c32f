package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Open  string `validate:"required,hhmm"`
	Lunch string `validate:"hhmm"`
}

func TestHHMM(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	cases := []struct {
		name  string
		in    sample
		valid bool
	}{
		{name: "valid", in: sample{Open: "09:00", Lunch: "12:30"}, valid: true},
		{name: "empty optional", in: sample{Open: "23:59"}, valid: true},
		{name: "missing required", in: sample{}, valid: false},
		{name: "hour out of range", in: sample{Open: "24:00"}, valid: false},
		{name: "single digit hour", in: sample{Open: "9:00"}, valid: false},
		{name: "garbage", in: sample{Open: "09:00", Lunch: "noon"}, valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.in)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.NotEmpty(t, FieldErrors(err))
		})
	}
}

func TestRegister_GinEngine(t *testing.T) {
	assert.NoError(t, Register())
	assert.NoError(t, Register())
}
