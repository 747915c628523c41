package rema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testHouseholds() []Household {
	return []Household{
		{ID: "1", Nom: "Durand", Prenom: "Marie", IDSisiao: "100", Adresse: "Paris", CodePostal: "75002", Secteur: 3, Statut: StatutARencontrer},
		{ID: "2", Nom: "Martin", Prenom: "Paul", IDSisiao: "200", Adresse: "Pantin", CodePostal: "93500", Secteur: 12, Statut: StatutRencontre},
		{ID: "3", Nom: "Dupont", Prenom: "Anne-Marie", IDSisiao: "300", Adresse: "Paris", CodePostal: "75019", Secteur: 3, Statut: StatutCloture},
	}
}

func TestFilterHouseholdsEmptyFiltersKeepsEverything(t *testing.T) {
	households := testHouseholds()
	got := FilterHouseholds(households, Filters{})
	assert.Equal(t, households, got, "empty filters must return the full set in order")
}

func TestFilterHouseholdsCaseInsensitiveSubstring(t *testing.T) {
	got := FilterHouseholds(testHouseholds(), Filters{Nom: "dUr"})
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilterHouseholdsCombinesWithAnd(t *testing.T) {
	got := FilterHouseholds(testHouseholds(), Filters{Adresse: "paris", Statut: "clôturé"})
	assert.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestFilterHouseholdsCoercesSecteur(t *testing.T) {
	got := FilterHouseholds(testHouseholds(), Filters{Secteur: "3"})
	assert.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestFilterHouseholdsIdempotent(t *testing.T) {
	f := Filters{Prenom: "marie"}
	once := FilterHouseholds(testHouseholds(), f)
	twice := FilterHouseholds(once, f)
	assert.Equal(t, once, twice)
}

func TestFilterHouseholdsDoesNotMutateInput(t *testing.T) {
	households := testHouseholds()
	FilterHouseholds(households, Filters{Nom: "nobody"})
	assert.Equal(t, testHouseholds(), households)
}
