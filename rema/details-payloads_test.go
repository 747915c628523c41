package rema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositionEntryRoundTrip(t *testing.T) {
	var details HouseholdDetailsAPI
	payload := `{
		"id": 7,
		"nom": "Durand",
		"prenom": "Marie",
		"compositionFamiliale": [["Hs", 1], ["Ce", 2]],
		"demandes": [{"id": 1, "statut": 1, "type_prestation": 2}]
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &details))

	require.Len(t, details.CompositionFamiliale, 2)
	assert.Equal(t, CompositionEntry{Type: "Hs", Count: 1}, details.CompositionFamiliale[0])
	assert.Equal(t, CompositionEntry{Type: "Ce", Count: 2}, details.CompositionFamiliale[1])

	encoded, err := json.Marshal(details.CompositionFamiliale[1])
	require.NoError(t, err)
	assert.JSONEq(t, `["Ce", 2]`, string(encoded))

	var bad CompositionEntry
	assert.Error(t, json.Unmarshal([]byte(`["Hs"]`), &bad))
}

func TestFormatCompositionFamiliale(t *testing.T) {
	assert.Equal(t, "Non renseignée", FormatCompositionFamiliale(nil))
	assert.Equal(t,
		"Homme seul, Couple avec enfant(s) (2)",
		FormatCompositionFamiliale([]CompositionEntry{{Type: "Hs", Count: 1}, {Type: "Ce", Count: 2}}))
	assert.Equal(t, "Xx", FormatCompositionFamiliale([]CompositionEntry{{Type: "Xx", Count: 1}}),
		"unknown codes pass through")
}

func TestFormatDemandesPrestation(t *testing.T) {
	assert.Equal(t, "Aucune demande", FormatDemandesPrestation(nil))
	assert.Equal(t,
		"Alimentaire - En attente, Matérielle - En cours",
		FormatDemandesPrestation([]DemandePrestation{
			{Statut: 1, TypePrestation: 1},
			{Statut: 2, TypePrestation: 2},
		}))
	assert.Equal(t,
		"Type 9 - Statut 9",
		FormatDemandesPrestation([]DemandePrestation{{Statut: 9, TypePrestation: 9}}))
}
