package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMarkerStore(t *testing.T) *MarkerStore {
	t.Helper()
	store, err := NewMarkerStore(filepath.Join(t.TempDir(), "markers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMarkerStoreAddAndList(t *testing.T) {
	store := newTestMarkerStore(t)

	signalement, err := store.Add(MarkerData{
		Type:    MarkerSignalement,
		Address: "12 rue de la Paix, Paris",
		Note: &NoteData{
			Address: "12 rue de la Paix, Paris",
			Object:  "nouveau campement",
			Urgency: "haute",
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, signalement.ID)

	_, err = store.Add(MarkerData{
		Type:    MarkerRencontre,
		Address: "Place de la République",
		Encounter: &EncounterData{
			Address:   "Place de la République",
			LastName:  "Durand",
			FirstName: "Marie",
			Signalements: map[string]SignalementInfo{
				"campement": {Checked: true, Comment: "2 tentes"},
			},
		},
	})
	require.NoError(t, err)

	markers, err := store.List()
	require.NoError(t, err)
	require.Len(t, markers, 2)

	assert.Equal(t, MarkerSignalement, markers[0].Type)
	require.NotNil(t, markers[0].Note)
	assert.Equal(t, "nouveau campement", markers[0].Note.Object)

	assert.Equal(t, MarkerRencontre, markers[1].Type)
	require.NotNil(t, markers[1].Encounter)
	assert.Equal(t, "Durand", markers[1].Encounter.LastName)
	assert.True(t, markers[1].Encounter.Signalements["campement"].Checked)
}

func TestMarkerStoreRejectsUnknownType(t *testing.T) {
	store := newTestMarkerStore(t)
	_, err := store.Add(MarkerData{Type: "griffonnage", Address: "quelque part"})
	assert.Error(t, err)
}

func TestMarkerStoreZonesToExplore(t *testing.T) {
	store := newTestMarkerStore(t)

	_, err := store.Add(MarkerData{Type: MarkerExploratoire, Address: "Canal Saint-Martin"})
	require.NoError(t, err)
	_, err = store.Add(MarkerData{Type: MarkerNote, Address: "Gare du Nord"})
	require.NoError(t, err)

	zones, err := store.ZonesToExplore()
	require.NoError(t, err)
	assert.Equal(t, []string{"Canal Saint-Martin"}, zones)
}

func TestValidMarkerType(t *testing.T) {
	for _, markerType := range []MarkerType{MarkerPosition, MarkerSignalement, MarkerVeille, MarkerExploratoire, MarkerNote, MarkerRencontre} {
		assert.True(t, ValidMarkerType(markerType))
	}
	assert.False(t, ValidMarkerType("autre"))
}
