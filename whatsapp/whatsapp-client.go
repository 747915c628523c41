package whatsapp

import (
	"context"
	"fmt"
	"os"

	_ "github.com/glebarez/go-sqlite"
	"github.com/mdp/qrterminal/v3"
	log "github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
	waE2E "go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
)

type WhatsAppClient struct {
}

func NewClient() WhatsAppClient {
	return WhatsAppClient{}
}

func (whatsAppClient *WhatsAppClient) RegisterDevice() error {
	ctx := context.Background()
	client, err := initClient(ctx)
	if err != nil {
		return err
	}

	if client.Store.ID == nil {
		qrChannel, _ := client.GetQRChannel(ctx)
		err = client.Connect()
		if err != nil {
			return err
		}
		for evt := range qrChannel {
			if evt.Event == "code" {
				fmt.Println("Please scan the following QRCode with your WhatsApp client, in order to link the device")
				qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
			} else {
				fmt.Println("Login event:", evt.Event)
			}
		}
	} else {
		return fmt.Errorf("device is already registered to a WhatsApp account: %s", client.Store.PushName)
	}

	return nil
}

func (whatsAppClient *WhatsAppClient) SendMessage(message string, recipient types.JID) error {
	ctx := context.Background()
	client, err := initClient(ctx)
	if err != nil {
		return err
	}

	err = client.Connect()
	if err != nil {
		return err
	}
	defer client.Disconnect()

	_, err = client.SendMessage(ctx, recipient, &waE2E.Message{Conversation: proto.String(message)})
	if err != nil {
		return err
	}
	return nil
}

func (whatsAppClient *WhatsAppClient) PrintGroupList() error {
	ctx := context.Background()
	client, err := initClient(ctx)
	if err != nil {
		return err
	}
	err = client.Connect()
	if err != nil {
		return err
	}
	defer client.Disconnect()

	groups, err := client.GetJoinedGroups(ctx)
	if err != nil {
		return err
	}
	for _, group := range groups {
		log.Infof("Group '%s' - JID: '%s'", group.Name, group.JID)
	}
	return nil
}

func initClient(ctx context.Context) (*whatsmeow.Client, error) {
	var minLogLevel = "INFO"
	if os.Getenv("VERBOSE") != "" {
		minLogLevel = "DEBUG"
	}
	dbLog := waLog.Stdout("Database", minLogLevel, true)
	container, err := sqlstore.New(ctx, "sqlite", "file:maraude-chat.db?_pragma=foreign_keys(1)", dbLog)
	if err != nil {
		return nil, err
	}
	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, err
	}
	clientLog := waLog.Stdout("Client", minLogLevel, true)
	return whatsmeow.NewClient(device, clientLog), nil
}
