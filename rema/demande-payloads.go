package rema

type Demande struct {
	IDDemande           string              `json:"idDemande"`
	StatutDemandeSisiao string              `json:"statutDemandeSisiao"`
	Date                string              `json:"date"`
	Localisation        DemandeLocalisation `json:"localisation"`
	Details             DemandeDetails      `json:"details"`
}

type DemandeLocalisation struct {
	Adresse     string `json:"adresse"`
	CodePostal  string `json:"codePostal"`
	Commentaire string `json:"commentaire"`
}

type DemandeDetails struct {
	TypeDemandes string `json:"typeDemandes"`
	Commentaire  string `json:"commentaire"`
}

type MaterialPrestation struct {
	Duvet    int `json:"duvet"`
	Kit      int `json:"kit"`
	Vetement int `json:"vetement"`
}

type ContactData struct {
	ContactType       string             `json:"contactType"`
	SansEchangeMotifs []string           `json:"sansEchangeMotifs"`
	AvecEchangeMotifs []string           `json:"avecEchangeMotifs"`
	PrestationType    string             `json:"prestationType"`
	PrestationsMat    MaterialPrestation `json:"prestationsMat"`
	Commentaire       string             `json:"commentaire"`
}

type EvaluationSisiao struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Statut      string `json:"statut"`
	Commentaire string `json:"commentaire"`
	Evaluateur  string `json:"evaluateur"`
}

type SuiviSocialSection struct {
	LieuVie      *LieuVie      `json:"lieuVie,omitempty"`
	HygieneSante *HygieneSante `json:"hygieneSante,omitempty"`
	Alimentation *Alimentation `json:"alimentation,omitempty"`
	Ressources   *Ressources   `json:"ressources,omitempty"`
}

type LieuVie struct {
	TypeLogement          string `json:"typeLogement"`
	ConditionsMaterielles string `json:"conditionsMaterielles"`
	Commentaire           string `json:"commentaire"`
}

type HygieneSante struct {
	EtatHygiene    string `json:"etatHygiene"`
	ProblemesSante string `json:"problemesSante"`
	Commentaire    string `json:"commentaire"`
}

type Alimentation struct {
	AccesAlimentation     string `json:"accesAlimentation"`
	HabitudesAlimentaires string `json:"habitudesAlimentaires"`
	Commentaire           string `json:"commentaire"`
}

type Ressources struct {
	RessourcesPersonnelles      string `json:"ressourcesPersonnelles"`
	RessourcesInstitutionnelles string `json:"ressourcesInstitutionnelles"`
	Commentaire                 string `json:"commentaire"`
}

type PrestationEMA struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Type        string   `json:"type"`
	Intervenant string   `json:"intervenant"`
	Commentaire string   `json:"commentaire"`
	Montant     *float64 `json:"montant,omitempty"`
}

type DiagnosticEMA struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Type            string `json:"type"`
	Intervenant     string `json:"intervenant"`
	Resultats       string `json:"resultats"`
	Recommandations string `json:"recommandations"`
}
