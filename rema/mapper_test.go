package rema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapStatut(t *testing.T) {
	tests := []struct {
		statut int
		want   string
	}{
		{1, "A rencontrer"},
		{2, "Rencontré"},
		{3, "Clôturé"},
		{0, "A rencontrer"},
		{99, "A rencontrer"},
		{-1, "A rencontrer"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapStatut(tt.statut), "statut %d", tt.statut)
	}
}

func TestMapAPIToLocal(t *testing.T) {
	alerte := "connue du 115"
	api := HouseholdAPI{
		ID:                123456789,
		Nom:               "Durand",
		Prenom:            "Marie",
		Adresse:           "12 rue de la Paix",
		CP:                "75002",
		Ville:             "Paris",
		Naissance:         "1980-04-12",
		Tel:               "0601020304",
		Statut:            2,
		AlertePersonnelle: &alerte,
	}

	h := MapAPIToLocal(api)

	assert.Equal(t, "123456789", h.ID)
	assert.Equal(t, "123456789", h.IDSisiao, "idSisiao duplicates the numeric id")
	assert.Equal(t, "Durand", h.Nom)
	assert.Equal(t, "Marie", h.Prenom)

	// The API cross-maps ville->adresse and cp->codePostal; the API's own
	// adresse field is dropped. Deliberate: this mirrors the upstream
	// contract, it is not a bug to fix here.
	assert.Equal(t, "Paris", h.Adresse)
	assert.Equal(t, "75002", h.CodePostal)

	assert.Equal(t, "Rencontré", h.Statut)
	assert.Equal(t, 0, h.Secteur)
	assert.Equal(t, "", h.Synthese)
	assert.Equal(t, "", h.CompositionFamiliale)
	assert.Equal(t, []Member{}, h.Members)

	assert.Equal(t, "1980-04-12", h.Naissance)
	assert.Equal(t, "0601020304", h.Tel)
	require.NotNil(t, h.AlertePersonnelle)
	assert.Equal(t, "connue du 115", *h.AlertePersonnelle)
	assert.Nil(t, h.DateAlerte)
}

func TestMapAPIToLocalDeterministic(t *testing.T) {
	api := HouseholdAPI{ID: 7, Nom: "Petit", Statut: 3}
	assert.Equal(t, MapAPIToLocal(api), MapAPIToLocal(api))
}

func TestValidateMembers(t *testing.T) {
	h := Household{ID: "1", Members: []Member{
		{ID: "m1", IsPrincipal: true},
		{ID: "m2"},
	}}
	assert.NoError(t, h.ValidateMembers())

	h.Members = append(h.Members, Member{ID: "m3", IsPrincipal: true})
	assert.Error(t, h.ValidateMembers())

	assert.NoError(t, Household{ID: "2"}.ValidateMembers())
}
