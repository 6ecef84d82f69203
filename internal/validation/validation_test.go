package validation

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Secret123"))

	tests := []struct {
		password string
		message  string
	}{
		{"Sh0rt", "пароль должен быть не менее 8 символов"},
		{"alllowercase1", "пароль должен содержать хотя бы одну заглавную букву"},
		{"ALLUPPERCASE1", "пароль должен содержать хотя бы одну строчную букву"},
		{"NoDigitsHere", "пароль должен содержать хотя бы одну цифру"},
	}
	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		assert.True(t, apperror.IsValidation(err), tt.password)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, tt.message, appErr.Message)
	}
}

type bindingSample struct {
	Deadline time.Time `validate:"required,future"`
	Role     string    `validate:"required,role"`
	Days     int       `validate:"gte=1"`
}

func TestRegister_CustomTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	valid := bindingSample{Deadline: time.Now().Add(time.Hour), Role: "Client", Days: 3}
	assert.NoError(t, v.Struct(valid))

	invalid := bindingSample{Deadline: time.Now().Add(-time.Hour), Role: "admin", Days: 0}
	err := v.Struct(invalid)
	require.Error(t, err)

	msg := Describe(err)
	assert.Contains(t, msg, "deadline должен быть в будущем")
	assert.Contains(t, msg, "role должна быть freelancer или client")
	assert.Contains(t, msg, "days должно быть не меньше 1")
}
