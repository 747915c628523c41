package main

import (
	"bytes"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow/types"

	"github.com/clement-dufour/maraude-cli/rema"
	"github.com/clement-dufour/maraude-cli/whatsapp"
)

// NotifyService pushes field events to the team's WhatsApp group.
type NotifyService struct {
	chatClient *whatsapp.WhatsAppClient
	group      types.JID
}

func NewNotifyService(chatClient *whatsapp.WhatsAppClient, groupID string) (*NotifyService, error) {
	if groupID == "" {
		return nil, fmt.Errorf("no WhatsApp group Id provided, skipping WhatsApp notification")
	}
	jid, err := types.ParseJID(groupID)
	if err != nil {
		return nil, err
	}
	return &NotifyService{chatClient: chatClient, group: jid}, nil
}

// SendSignalement announces a freshly dropped signalement marker.
func (n *NotifyService) SendSignalement(marker Marker) error {
	log.Infof("Sending signalement notification for '%s'", marker.Address)
	return n.chatClient.SendMessage(formatSignalement(marker), n.group)
}

// SendStatusSummary pushes a per-statut head count of the loaded ménages,
// flagging the snapshot when it came from the fallback.
func (n *NotifyService) SendStatusSummary(households []rema.Household, usingFallback bool) error {
	return n.chatClient.SendMessage(formatStatusSummary(households, usingFallback), n.group)
}

func formatSignalement(marker Marker) string {
	var buf = new(bytes.Buffer)
	buf.WriteString(fmt.Sprintf("📍 *Nouveau signalement* : %s\n", marker.Address))
	if marker.Note != nil {
		if marker.Note.Object != "" {
			buf.WriteString(fmt.Sprintf("Objet : %s\n", marker.Note.Object))
		}
		if marker.Note.Urgency != "" {
			buf.WriteString(fmt.Sprintf("Urgence : %s\n", marker.Note.Urgency))
		}
		if marker.Note.LocationComment != "" {
			buf.WriteString(fmt.Sprintf("Commentaire : %s\n", marker.Note.LocationComment))
		}
	}
	return buf.String()
}

func formatStatusSummary(households []rema.Household, usingFallback bool) string {
	counts := map[string]int{}
	for _, household := range households {
		counts[household.Statut]++
	}

	var buf = new(bytes.Buffer)
	buf.WriteString("🤖 *État des ménages suivis* :\n")
	buf.WriteString(fmt.Sprintf("A rencontrer : %d\n", counts[rema.StatutARencontrer]))
	buf.WriteString(fmt.Sprintf("Rencontré : %d\n", counts[rema.StatutRencontre]))
	buf.WriteString(fmt.Sprintf("Clôturé : %d\n", counts[rema.StatutCloture]))
	buf.WriteString(fmt.Sprintf("Total : %d\n", len(households)))
	if usingFallback {
		buf.WriteString("⚠️ Données issues de la sauvegarde locale (mode démonstration)\n")
	}
	return buf.String()
}
