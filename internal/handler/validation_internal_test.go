package handler

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidations(t *testing.T) {
	v := validator.New()

	trans, err := registerValidations(v, customTags)
	require.NoError(t, err)

	type body struct {
		Titre   string `json:"titre" validate:"notblank"`
		Periode string `json:"periode" validate:"periode"`
	}
	err = v.Struct(body{Titre: "   ", Periode: "2024-13"})
	require.Error(t, err)

	verrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	msgs := map[string]string{}
	for _, fe := range verrs {
		msgs[fe.Field()] = fe.Translate(trans)
	}
	assert.Equal(t, "titre ne peut pas être vide", msgs["titre"])
	assert.Equal(t, "periode doit être au format AAAA-MM", msgs["periode"])
}

func TestRegisterValidations_BadTagFails(t *testing.T) {
	bad := []customTag{{tag: "", fn: notBlank, text: "{0} invalide"}}

	_, err := registerValidations(validator.New(), bad)
	assert.Error(t, err)
}

func TestSetupValidation_NoError(t *testing.T) {
	assert.NoError(t, SetupValidation())
	assert.NotNil(t, translator)
}
