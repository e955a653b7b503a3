package dto_test

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoprofiles/internal/api/app/dto"
	"geoprofiles/internal/api/domain/entities"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func TestRegisterRequestIsPublicDefault(t *testing.T) {
	var absent, explicit dto.RegisterRequest
	require.NoError(t, json.Unmarshal([]byte(`{"login":"mon1"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"login":"mon1","isPublic":false}`), &explicit))

	assert.True(t, absent.ToRegistration().IsPublic)
	assert.False(t, explicit.ToRegistration().IsPublic)
}

func TestPatchRequestDistinguishesAbsentFromFalse(t *testing.T) {
	var req dto.PatchProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"isPublic":false,"phone":""}`), &req))

	patch := req.ToPatch()
	require.NotNil(t, patch.IsPublic)
	assert.False(t, *patch.IsPublic)
	require.NotNil(t, patch.Phone)
	assert.Nil(t, patch.Login)
	assert.Nil(t, patch.Image)
}

func TestProfileViewOmitsEmptyImage(t *testing.T) {
	user := &entities.User{ID: 5, Login: "mon1", Email: "e", CountryCode: "RU", Phone: "+7", PasswordHash: "secret"}

	raw, err := json.Marshal(dto.NewProfileView(user))
	require.NoError(t, err)
	assert.JSONEq(t, `{"login":"mon1","email":"e","countryCode":"RU","isPublic":false,"phone":"+7"}`, string(raw))

	user.Image = "pic"
	raw, err = json.Marshal(dto.NewProfileView(user))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"image":"pic"`)
}

func TestCountryViewsNeverNull(t *testing.T) {
	raw, err := json.Marshal(dto.NewCountryViews(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
