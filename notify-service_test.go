package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clement-dufour/maraude-cli/rema"
	"github.com/clement-dufour/maraude-cli/whatsapp"
)

func TestNewNotifyServiceRequiresGroup(t *testing.T) {
	chatClient := whatsapp.NewClient()
	_, err := NewNotifyService(&chatClient, "")
	assert.Error(t, err)

	_, err = NewNotifyService(&chatClient, "not a jid")
	assert.Error(t, err)

	notifier, err := NewNotifyService(&chatClient, "123456789@g.us")
	require.NoError(t, err)
	assert.NotNil(t, notifier)
}

func TestFormatSignalement(t *testing.T) {
	marker := Marker{MarkerData: MarkerData{
		Type:    MarkerSignalement,
		Address: "12 rue de la Paix, Paris",
		Note: &NoteData{
			Object:          "nouveau campement",
			Urgency:         "haute",
			LocationComment: "sous le pont",
		},
	}}

	message := formatSignalement(marker)
	assert.Contains(t, message, "Nouveau signalement")
	assert.Contains(t, message, "12 rue de la Paix, Paris")
	assert.Contains(t, message, "Objet : nouveau campement")
	assert.Contains(t, message, "Urgence : haute")
	assert.Contains(t, message, "Commentaire : sous le pont")

	bare := formatSignalement(Marker{MarkerData: MarkerData{Type: MarkerSignalement, Address: "Gare du Nord"}})
	assert.Contains(t, bare, "Gare du Nord")
	assert.NotContains(t, bare, "Objet")
}

func TestFormatStatusSummary(t *testing.T) {
	households := []rema.Household{
		{ID: "1", Statut: rema.StatutARencontrer},
		{ID: "2", Statut: rema.StatutARencontrer},
		{ID: "3", Statut: rema.StatutRencontre},
		{ID: "4", Statut: rema.StatutCloture},
	}

	message := formatStatusSummary(households, false)
	assert.Contains(t, message, "A rencontrer : 2")
	assert.Contains(t, message, "Rencontré : 1")
	assert.Contains(t, message, "Clôturé : 1")
	assert.Contains(t, message, "Total : 4")
	assert.NotContains(t, message, "sauvegarde locale")

	demo := formatStatusSummary(nil, true)
	assert.Contains(t, demo, "Total : 0")
	assert.Contains(t, demo, "sauvegarde locale")
}
