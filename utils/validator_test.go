package utils

import (
	"errors"
	"testing"

	"hr_payroll/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Kind       string `json:"kind" validate:"omitempty,person_kind"`
	FirstName  string `json:"first_name" validate:"required"`
	BirthDate  string `json:"birth_date" validate:"required,date"`
	NationalID string `json:"national_id" validate:"required,national_id"`
}

func TestValidateStructAcceptsValidRequest(t *testing.T) {
	err := ValidateStruct(&sampleRequest{
		Kind:       "full_time",
		FirstName:  "Ana",
		BirthDate:  "1990-01-15",
		NationalID: "1234567",
	})
	assert.NoError(t, err)
}

func TestValidateStructCollectsFields(t *testing.T) {
	err := ValidateStruct(&sampleRequest{
		Kind:       "INTERN",
		BirthDate:  "15/01/1990",
		NationalID: "0123",
	})
	require.Error(t, err)

	var verr *types.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, types.KindValidationFailed, verr.Kind)

	tags := map[string]string{}
	for _, f := range verr.Fields {
		tags[f.Field] = f.Tag
	}
	assert.Equal(t, map[string]string{
		"kind":        "person_kind",
		"first_name":  "required",
		"birth_date":  "date",
		"national_id": "national_id",
	}, tags)
}

func TestNationalIDPattern(t *testing.T) {
	for id, ok := range map[string]bool{
		"1":                     true,
		"12345678901234567890":  true,
		"123456789012345678901": false,
		"0123":                  false,
		"12a4":                  false,
		"":                      false,
	} {
		assert.Equal(t, ok, nationalIDPattern.MatchString(id), id)
	}
}
