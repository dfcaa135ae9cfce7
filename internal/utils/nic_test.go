package utils_test

import (
	"testing"

	"github.com/araliya-mfi/loan_origination_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNIC_OldFormatMale(t *testing.T) {
	info, err := utils.ParseNIC("882341234V")
	require.NoError(t, err)
	assert.Equal(t, 1988, info.BirthYear)
	assert.Equal(t, 234, info.DayOfYear)
	assert.Equal(t, utils.GenderMale, info.Gender)
}

func TestParseNIC_OldFormatFemale(t *testing.T) {
	info, err := utils.ParseNIC("887341234X")
	require.NoError(t, err)
	assert.Equal(t, 234, info.DayOfYear)
	assert.Equal(t, utils.GenderFemale, info.Gender)
}

func TestParseNIC_NewFormat(t *testing.T) {
	info, err := utils.ParseNIC("199512300123")
	require.NoError(t, err)
	assert.Equal(t, 1995, info.BirthYear)
	assert.Equal(t, 123, info.DayOfYear)
	assert.Equal(t, utils.GenderMale, info.Gender)

	info, err = utils.ParseNIC("199562300123")
	require.NoError(t, err)
	assert.Equal(t, utils.GenderFemale, info.Gender)
}

func TestParseNIC_Invalid(t *testing.T) {
	cases := []string{
		"",
		"12345",
		"88234123V",    // too short for old format
		"8823412345",   // missing V/X suffix
		"882341234Z",   // bad suffix
		"884001234V",   // day 400 is in neither band
		"199590000123", // day 900 is in neither band
		"19951230012",  // 11 digits
		"ABC341234V",
	}
	for _, nic := range cases {
		_, err := utils.ParseNIC(nic)
		assert.Error(t, err, "expected %q to be rejected", nic)
		assert.False(t, utils.IsValidNIC(nic))
	}
}

func TestGenderFromNIC(t *testing.T) {
	gender, err := utils.GenderFromNIC("882341234V")
	require.NoError(t, err)
	assert.Equal(t, utils.GenderMale, gender)

	_, err = utils.GenderFromNIC("not-a-nic")
	assert.Error(t, err)
}
