package rema

const (
	StatutARencontrer = "A rencontrer"
	StatutRencontre   = "Rencontré"
	StatutCloture     = "Clôturé"
)

type HouseholdAPI struct {
	ID                int     `json:"id"`
	Nom               string  `json:"nom"`
	Prenom            string  `json:"prenom"`
	Adresse           string  `json:"adresse"`
	CP                string  `json:"cp"`
	Ville             string  `json:"ville"`
	Naissance         string  `json:"naissance"`
	Tel               string  `json:"tel"`
	Statut            int     `json:"statut"`
	AlertePersonnelle *string `json:"alerte_personnelle"`
	DateAlerte        *string `json:"date_alerte"`
	DateMesureVeille  *string `json:"date_mesure_veille"`
	DureeVeille       *string `json:"duree_veille"`
	MesureVeille      *string `json:"mesure_veille"`
	Precision         *string `json:"precision"`
}

// Household is the canonical shape used by the console and by the static
// fallback snapshot. The adresse/codePostal fields are fed from the API's
// ville/cp fields and idSisiao duplicates the numeric id; that is how the
// upstream contract works today, so it stays that way here.
type Household struct {
	ID                   string   `json:"id"`
	Nom                  string   `json:"nom"`
	Prenom               string   `json:"prenom"`
	IDSisiao             string   `json:"idSisiao"`
	Adresse              string   `json:"adresse"`
	CodePostal           string   `json:"codePostal"`
	Secteur              int      `json:"secteur"`
	Statut               string   `json:"statut"`
	Synthese             string   `json:"synthese"`
	CompositionFamiliale string   `json:"compositionFamiliale"`
	Members              []Member `json:"members"`

	Demande     *Demande            `json:"demande,omitempty"`
	History     []Demande           `json:"history,omitempty"`
	Contacts    []ContactData       `json:"contacts,omitempty"`
	Evaluations []EvaluationSisiao  `json:"evaluations,omitempty"`
	SuiviSocial *SuiviSocialSection `json:"suiviSocial,omitempty"`
	Prestations []PrestationEMA     `json:"prestations,omitempty"`
	Diagnostics []DiagnosticEMA     `json:"diagnostics,omitempty"`
	Alerte      string              `json:"alertePersonnelle,omitempty"`

	Naissance         string  `json:"naissance,omitempty"`
	Tel               string  `json:"tel,omitempty"`
	AlertePersonnelle *string `json:"alerte_personnelle,omitempty"`
	DateAlerte        *string `json:"date_alerte,omitempty"`
	DateMesureVeille  *string `json:"date_mesure_veille,omitempty"`
	DureeVeille       *string `json:"duree_veille,omitempty"`
	MesureVeille      *string `json:"mesure_veille,omitempty"`
	Precision         *string `json:"precision,omitempty"`
}

type Member struct {
	ID          string `json:"id"`
	IsPrincipal bool   `json:"isPrincipal"`
	Nom         string `json:"nom"`
	Prenom      string `json:"prenom"`
	Tel         string `json:"tel"`
	Naissance   string `json:"naissance"`
	Age         int    `json:"age"`
	Sexe        string `json:"sexe"`
	Situation   string `json:"situation"`
}

// HouseholdUpdate is a partial update applied as a shallow merge; nil
// fields leave the record untouched.
type HouseholdUpdate struct {
	Statut               *string
	Synthese             *string
	CompositionFamiliale *string
	Secteur              *int
	Alerte               *string
	Demande              *Demande
	Contacts             []ContactData
}

func (u HouseholdUpdate) Apply(h *Household) {
	if u.Statut != nil {
		h.Statut = *u.Statut
	}
	if u.Synthese != nil {
		h.Synthese = *u.Synthese
	}
	if u.CompositionFamiliale != nil {
		h.CompositionFamiliale = *u.CompositionFamiliale
	}
	if u.Secteur != nil {
		h.Secteur = *u.Secteur
	}
	if u.Alerte != nil {
		h.Alerte = *u.Alerte
	}
	if u.Demande != nil {
		h.Demande = u.Demande
	}
	if u.Contacts != nil {
		h.Contacts = u.Contacts
	}
}
