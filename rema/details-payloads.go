package rema

import (
	"encoding/json"
	"fmt"
	"strings"
)

type HouseholdDetailsAPI struct {
	ID                   int                 `json:"id"`
	Nom                  string              `json:"nom"`
	Prenom               string              `json:"prenom"`
	CompositionFamiliale []CompositionEntry  `json:"compositionFamiliale"`
	Demandes             []DemandePrestation `json:"demandes"`
	Members              []Member            `json:"members"`
}

// CompositionEntry is serialized upstream as a two-element array, e.g.
// ["Hs", 2].
type CompositionEntry struct {
	Type  string
	Count int
}

func (e *CompositionEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("composition entry: expected 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Type); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &e.Count)
}

func (e CompositionEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Type, e.Count})
}

type DemandePrestation struct {
	ID             int    `json:"id"`
	Date           string `json:"date,omitempty"`
	Statut         int    `json:"statut"`
	TypePrestation int    `json:"type_prestation"`
}

var compositionLabels = map[string]string{
	"Hs": "Homme seul",
	"Fs": "Femme seule",
	"C":  "Couple",
	"Ce": "Couple avec enfant(s)",
	"Cs": "Couple sans enfant",
	"F":  "Famille monoparentale",
	"G":  "Groupe",
}

var demandeStatutLabels = map[int]string{
	1: "En attente",
	2: "En cours",
	3: "Terminée",
	4: "Annulée",
}

var typePrestationLabels = map[int]string{
	1: "Alimentaire",
	2: "Matérielle",
	3: "Hébergement",
	4: "Vestimentaire",
}

// FormatCompositionFamiliale renders composition codes for display,
// e.g. "Couple avec enfant(s), Homme seul (2)".
func FormatCompositionFamiliale(entries []CompositionEntry) string {
	if len(entries) == 0 {
		return "Non renseignée"
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		label, ok := compositionLabels[e.Type]
		if !ok {
			label = e.Type
		}
		if e.Count > 1 {
			label = fmt.Sprintf("%s (%d)", label, e.Count)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, ", ")
}

// FormatDemandesPrestation renders prestation demandes for display,
// e.g. "Alimentaire - En attente, Matérielle - En cours".
func FormatDemandesPrestation(demandes []DemandePrestation) string {
	if len(demandes) == 0 {
		return "Aucune demande"
	}
	parts := make([]string, 0, len(demandes))
	for _, d := range demandes {
		statut, ok := demandeStatutLabels[d.Statut]
		if !ok {
			statut = fmt.Sprintf("Statut %d", d.Statut)
		}
		typeLabel, ok := typePrestationLabels[d.TypePrestation]
		if !ok {
			typeLabel = fmt.Sprintf("Type %d", d.TypePrestation)
		}
		parts = append(parts, fmt.Sprintf("%s - %s", typeLabel, statut))
	}
	return strings.Join(parts, ", ")
}
