package ego

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/profilematch/backend/internal/domain"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }
func boolean(v bool) *bool   { return &v }

func numericType(min, max float64) domain.TraitValueType {
	return domain.TraitValueType{DataType: "numeric", MinValue: &min, MaxValue: &max}
}

func TestValidateTraitValueNumericInRange(t *testing.T) {
	err := validateTraitValue(numericType(1, 10), f64(7), nil, nil)
	assert.NoError(t, err)
}

func TestValidateTraitValueNumericOutOfRange(t *testing.T) {
	assert.ErrorIs(t, validateTraitValue(numericType(1, 10), f64(11), nil, nil), domain.ErrTraitValueMismatch)
	assert.ErrorIs(t, validateTraitValue(numericType(1, 10), f64(0), nil, nil), domain.ErrTraitValueMismatch)
}

func TestValidateTraitValueWrongKind(t *testing.T) {
	err := validateTraitValue(numericType(1, 10), nil, str("seven"), nil)
	assert.ErrorIs(t, err, domain.ErrTraitValueMismatch)
}

func TestValidateTraitValueEnumMembership(t *testing.T) {
	vt := domain.TraitValueType{DataType: "enum", EnumValues: []string{"INTJ", "ENFP"}}

	assert.NoError(t, validateTraitValue(vt, nil, str("INTJ"), nil))
	assert.ErrorIs(t, validateTraitValue(vt, nil, str("XXXX"), nil), domain.ErrTraitValueMismatch)
}

func TestValidateTraitValueBoolean(t *testing.T) {
	vt := domain.TraitValueType{DataType: "boolean"}

	assert.NoError(t, validateTraitValue(vt, nil, nil, boolean(true)))
	assert.ErrorIs(t, validateTraitValue(vt, f64(1), nil, nil), domain.ErrTraitValueMismatch)
}

func TestValidateTraitValueExactlyOneValue(t *testing.T) {
	vt := domain.TraitValueType{DataType: "text"}

	assert.ErrorIs(t, validateTraitValue(vt, nil, nil, nil), domain.ErrTraitValueMismatch)
	assert.ErrorIs(t, validateTraitValue(vt, f64(1), str("x"), nil), domain.ErrTraitValueMismatch)
	assert.NoError(t, validateTraitValue(vt, nil, str("thoughtful"), nil))
}
