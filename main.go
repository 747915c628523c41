package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/clement-dufour/maraude-cli/rema"
	"github.com/clement-dufour/maraude-cli/whatsapp"
)

func initLogs(verbose bool) {
	log.SetOutput(os.Stdout)
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func parseConfig() Config {
	configFile, err := os.Open("config.json")
	if err != nil {
		log.Fatal("Failed to open application configuration file 'config.json'; ", err)
	}
	defer configFile.Close()

	var configData = Config{}
	err = json.NewDecoder(configFile).Decode(&configData)
	if err != nil {
		log.Fatal("Failed to parse application configuration file; ", err)
	}
	if configData.DatabasePath == "" {
		configData.DatabasePath = "maraude.db"
	}
	return configData
}

// initConsole is the composition root: config, rate-limit guard, REMA
// client and console state are built here and handed down explicitly.
func initConsole() (Config, *Console, *RemaClient, *LoginGuard, error) {
	configData := parseConfig()
	guard, err := NewLoginGuard(configData.DatabasePath)
	if err != nil {
		return configData, nil, nil, nil, fmt.Errorf("failed to open local database: %w", err)
	}

	remaClient := NewRemaClient(configData, guard)
	if err := remaClient.ReAuthenticate(); err != nil {
		log.Debugf("no saved session: %s", err)
	}
	return configData, NewConsole(remaClient), remaClient, guard, nil
}

// loadConsole consults the auth gate and the data source together, the
// way the console does at startup.
func loadConsole(console *Console, remaClient *RemaClient) error {
	if remaClient.CheckAuth() {
		console.SetAuthenticated()
	} else {
		console.SetUnauthenticated()
	}
	return console.Load()
}

func filtersFromContext(c *cli.Context) rema.Filters {
	return rema.Filters{
		Nom:        c.String("nom"),
		Prenom:     c.String("prenom"),
		IDSisiao:   c.String("id-sisiao"),
		Adresse:    c.String("adresse"),
		CodePostal: c.String("code-postal"),
		Secteur:    c.String("secteur"),
		Statut:     c.String("statut"),
	}
}

var filterFlags = []cli.Flag{
	cli.StringFlag{Name: "nom"},
	cli.StringFlag{Name: "prenom"},
	cli.StringFlag{Name: "id-sisiao"},
	cli.StringFlag{Name: "adresse"},
	cli.StringFlag{Name: "code-postal"},
	cli.StringFlag{Name: "secteur"},
	cli.StringFlag{Name: "statut"},
}

func printSourceBanner(console *Console) {
	if !console.UsingFallback() {
		return
	}
	switch console.State() {
	case StateAuthenticatedStale:
		log.Warn("Session établie mais données issues de la sauvegarde locale")
	default:
		log.Warn("Mode démonstration : données issues de la sauvegarde locale")
	}
}

func printHouseholds(households []rema.Household) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOM\tPRENOM\tID SISIAO\tADRESSE\tCP\tSECTEUR\tSTATUT")
	for _, h := range households {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			h.ID, h.Nom, h.Prenom, h.IDSisiao, h.Adresse, h.CodePostal, h.Secteur, h.Statut)
	}
	w.Flush()
}

func exportHouseholdsCSV(path string, households []rema.Household) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	err = w.Write([]string{"id", "nom", "prenom", "idSisiao", "adresse", "codePostal", "secteur", "statut"})
	if err != nil {
		return err
	}
	for _, h := range households {
		record := []string{h.ID, h.Nom, h.Prenom, h.IDSisiao, h.Adresse, h.CodePostal, strconv.Itoa(h.Secteur), h.Statut}
		if err = w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	initLogs(os.Getenv("VERBOSE") != "")

	app := cli.NewApp()
	app.Name = "Maraude CLI"
	app.Usage = "Console de maraude : suivi des ménages à la rue via l'API REMA"

	app.Commands = []cli.Command{
		{
			Name:  "login",
			Usage: "Authenticate against the REMA API",
			Action: func(c *cli.Context) error {
				configData, _, remaClient, guard, err := initConsole()
				if err != nil {
					return err
				}
				defer guard.Close()

				response, err := remaClient.Login(configData.Username, configData.Password)
				if err != nil {
					return err
				}
				if !response.Succeeded() {
					if response.Message != "" {
						return fmt.Errorf("login failed: %s", response.Message)
					}
					return fmt.Errorf("login failed")
				}
				log.Infof("Connecté (user_id: %s)", response.UserID)
				return nil
			},
		},
		{
			Name:  "logout",
			Usage: "Log out and clear every piece of local session state",
			Action: func(c *cli.Context) error {
				_, _, remaClient, guard, err := initConsole()
				if err != nil {
					return err
				}
				defer guard.Close()

				remaClient.Logout()
				return nil
			},
		},
		{
			Name:  "whoami",
			Usage: "Probe the session state",
			Action: func(c *cli.Context) error {
				_, _, remaClient, guard, err := initConsole()
				if err != nil {
					return err
				}
				defer guard.Close()

				if remaClient.CheckAuth() {
					if userID := remaClient.CurrentUserID(); userID != "" {
						log.Infof("Session établie (user_id: %s)", userID)
					} else {
						log.Info("Session établie")
					}
				} else {
					log.Info("Non authentifié : la console fonctionnera en mode démonstration")
				}
				return nil
			},
		},
		{
			Name:  "menages",
			Usage: "List tracked ménages, with optional per-column filters",
			Flags: append([]cli.Flag{cli.StringFlag{Name: "csv", Usage: "export the list to a CSV file"}}, filterFlags...),
			Action: func(c *cli.Context) error {
				_, console, remaClient, guard, err := initConsole()
				if err != nil {
					return err
				}
				defer guard.Close()

				if err := loadConsole(console, remaClient); err != nil {
					return fmt.Errorf("erreur critique de chargement: %w", err)
				}
				printSourceBanner(console)

				console.SetFilters(filtersFromContext(c))
				filtered := console.Filtered()
				printHouseholds(filtered)
				log.Infof("%d ménages affichés sur %d (source: %s)",
					len(filtered), len(console.AllHouseholds()), console.Source())

				if path := c.String("csv"); path != "" {
					if err := exportHouseholdsCSV(path, filtered); err != nil {
						return err
					}
					log.Infof("Export CSV écrit dans '%s'", path)
				}
				return nil
			},
		},
		{
			Name:      "ajouter",
			Usage:     "Add a ménage to the displayed list by its SISIAO identifier",
			ArgsUsage: "<idSisiao>",
			Action: func(c *cli.Context) error {
				identifier := c.Args().Get(0)
				if identifier == "" {
					return fmt.Errorf("usage: ajouter <idSisiao>")
				}

				_, console, remaClient, guard, err := initConsole()
				if err != nil {
					return err
				}
				defer guard.Close()

				if err := loadConsole(console, remaClient); err != nil {
					return fmt.Errorf("erreur critique de chargement: %w", err)
				}
				printSourceBanner(console)

				switch console.AddByIdentifier(identifier) {
				case AddSuccess:
					log.Infof("Ménage '%s' ajouté en tête de liste", identifier)
				case AddAlreadyExists:
					log.Warnf("Ménage '%s' déjà affiché", identifier)
				case AddNotFound:
					return fmt.Errorf("aucun ménage avec l'identifiant SISIAO '%s'", identifier)
				}
				return nil
			},
		},
		{
			Name:      "cloturer",
			Usage:     "Close a ménage's case",
			ArgsUsage: "<id>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "motif", Usage: "closure reason"},
			},
			Action: func(c *cli.Context) error {
				id := c.Args().Get(0)
				if id == "" {
					return fmt.Errorf("usage: cloturer <id>")
				}

				_, console, remaClient, guard, err := initConsole()
				if err != nil {
					return err
				}
				defer guard.Close()

				if err := loadConsole(console, remaClient); err != nil {
					return fmt.Errorf("erreur critique de chargement: %w", err)
				}

				statut := rema.StatutCloture
				update := rema.HouseholdUpdate{Statut: &statut}
				if motif := c.String("motif"); motif != "" {
					update.Synthese = &motif
				}
				if !console.UpdateHousehold(id, update) {
					return fmt.Errorf("aucun ménage avec l'id '%s'", id)
				}
				log.Infof("Ménage '%s' clôturé", id)

				// Optimistic: the local state above is authoritative for this
				// session even when the server refuses the update.
				payload := map[string]any{"statut": statut}
				if motif := c.String("motif"); motif != "" {
					payload["synthese"] = motif
				}
				if err := remaClient.PushHouseholdUpdate(id, payload); err != nil {
					log.Warnf("server update failed: %s", err)
				}
				return nil
			},
		},
		{
			Name:      "details",
			Usage:     "Fetch the detail record of a ménage",
			ArgsUsage: "<id>",
			Action: func(c *cli.Context) error {
				id := c.Args().Get(0)
				if id == "" {
					return fmt.Errorf("usage: details <id>")
				}

				_, _, remaClient, guard, err := initConsole()
				if err != nil {
					return err
				}
				defer guard.Close()

				details, err := remaClient.FetchHouseholdDetails(id)
				if err != nil {
					return err
				}
				log.Infof("Ménage %d : %s %s", details.ID, details.Nom, details.Prenom)
				log.Infof("Composition familiale : %s", rema.FormatCompositionFamiliale(details.CompositionFamiliale))
				log.Infof("Demandes de prestation : %s", rema.FormatDemandesPrestation(details.Demandes))
				return nil
			},
		},
		{
			Name:  "marquer",
			Usage: "Drop a field annotation (position, signalement, veille, exploratoire, note, rencontre)",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "type", Usage: "marker type"},
				cli.StringFlag{Name: "adresse", Usage: "marker address"},
				cli.StringFlag{Name: "objet", Usage: "note subject"},
				cli.StringFlag{Name: "urgence", Usage: "note urgency"},
				cli.StringFlag{Name: "commentaire", Usage: "location comment"},
			},
			Action: func(c *cli.Context) error {
				configData := parseConfig()
				markerType := MarkerType(c.String("type"))
				address := c.String("adresse")
				if address == "" {
					return fmt.Errorf("usage: marquer --type <type> --adresse <adresse>")
				}

				store, err := NewMarkerStore(configData.DatabasePath)
				if err != nil {
					return err
				}
				defer store.Close()

				data := MarkerData{Type: markerType, Address: address}
				if c.String("objet") != "" || c.String("urgence") != "" || c.String("commentaire") != "" {
					data.Note = &NoteData{
						Address:         address,
						Object:          c.String("objet"),
						Urgency:         c.String("urgence"),
						LocationComment: c.String("commentaire"),
						NoteType:        string(markerType),
					}
				}

				marker, err := store.Add(data)
				if err != nil {
					return err
				}
				log.Infof("Marqueur '%s' enregistré (%s)", marker.ID, marker.Type)

				if markerType == MarkerSignalement {
					whatsAppClient := whatsapp.NewClient()
					notifier, err := NewNotifyService(&whatsAppClient, configData.WhatsAppNotificationGroup)
					if err != nil {
						log.Warnf("signalement notification skipped: %s", err)
						return nil
					}
					if err := notifier.SendSignalement(marker); err != nil {
						log.Warnf("failed to notify the WhatsApp group: %s", err)
					}
				}
				return nil
			},
		},
		{
			Name:  "marqueurs",
			Usage: "List recorded field annotations",
			Action: func(c *cli.Context) error {
				configData := parseConfig()
				store, err := NewMarkerStore(configData.DatabasePath)
				if err != nil {
					return err
				}
				defer store.Close()

				markers, err := store.List()
				if err != nil {
					return err
				}
				for _, marker := range markers {
					log.Infof("[%s] %s - %s (%s)",
						marker.CreatedAt.Format("2006-01-02 15:04"), marker.Type, marker.Address, marker.ID)
				}
				log.Infof("%d marqueurs", len(markers))
				return nil
			},
		},
		{
			Name:  "zones",
			Usage: "List exploration zones",
			Action: func(c *cli.Context) error {
				configData := parseConfig()
				store, err := NewMarkerStore(configData.DatabasePath)
				if err != nil {
					return err
				}
				defer store.Close()

				zones, err := store.ZonesToExplore()
				if err != nil {
					return err
				}
				for _, zone := range zones {
					log.Infof("Zone à explorer : %s", zone)
				}
				return nil
			},
		},
		{
			Name:  "veille",
			Usage: "Keep the ménage list fresh, refetching on a fixed interval",
			Flags: []cli.Flag{
				cli.DurationFlag{Name: "interval", Value: 5 * time.Minute},
				cli.BoolFlag{Name: "notify", Usage: "push a status summary to the WhatsApp group after each refresh"},
			},
			Action: func(c *cli.Context) error {
				configData, console, remaClient, guard, err := initConsole()
				if err != nil {
					return err
				}
				defer guard.Close()

				if err := loadConsole(console, remaClient); err != nil {
					return fmt.Errorf("erreur critique de chargement: %w", err)
				}
				printSourceBanner(console)
				log.Infof("Veille démarrée : %d ménages (source: %s), rafraîchissement toutes les %s",
					len(console.AllHouseholds()), console.Source(), c.Duration("interval"))

				var notifier *NotifyService
				if c.Bool("notify") {
					whatsAppClient := whatsapp.NewClient()
					notifier, err = NewNotifyService(&whatsAppClient, configData.WhatsAppNotificationGroup)
					if err != nil {
						log.Warnf("status notifications disabled: %s", err)
					}
				}

				stop := make(chan struct{})
				interrupt := make(chan os.Signal, 1)
				signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
				go func() {
					<-interrupt
					close(stop)
				}()

				console.Watch(c.Duration("interval"), stop, func() {
					if notifier == nil {
						return
					}
					if err := notifier.SendStatusSummary(console.AllHouseholds(), console.UsingFallback()); err != nil {
						log.Warnf("failed to push status summary: %s", err)
					}
				})
				log.Info("Veille arrêtée")
				return nil
			},
		},
		{
			Name:  "register-chat-device",
			Usage: "Register the WhatsApp device locally",
			Action: func(c *cli.Context) error {
				whatsAppClient := whatsapp.NewClient()
				return whatsAppClient.RegisterDevice()
			},
		},
		{
			Name: "list-chat-groups",
			Action: func(c *cli.Context) error {
				whatsAppClient := whatsapp.NewClient()
				return whatsAppClient.PrintGroupList()
			},
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
