package rema

import (
	"fmt"
	"strconv"
)

// MapStatut converts the API's numeric case status to its display label.
// Unknown values fall back to "A rencontrer".
func MapStatut(statut int) string {
	switch statut {
	case 1:
		return StatutARencontrer
	case 2:
		return StatutRencontre
	case 3:
		return StatutCloture
	default:
		return StatutARencontrer
	}
}

// MapAPIToLocal converts a household from the API wire shape to the
// canonical shape. The API uses id instead of idSisiao, ville instead of
// adresse and cp instead of codePostal; those cross-mappings are part of
// the upstream contract and are carried over verbatim. Fields the API does
// not supply get fixed defaults.
func MapAPIToLocal(api HouseholdAPI) Household {
	return Household{
		ID:                   strconv.Itoa(api.ID),
		Nom:                  api.Nom,
		Prenom:               api.Prenom,
		IDSisiao:             strconv.Itoa(api.ID),
		Adresse:              api.Ville,
		CodePostal:           api.CP,
		Secteur:              0,
		Statut:               MapStatut(api.Statut),
		Synthese:             "",
		CompositionFamiliale: "",
		Members:              []Member{},

		Naissance:         api.Naissance,
		Tel:               api.Tel,
		AlertePersonnelle: api.AlertePersonnelle,
		DateAlerte:        api.DateAlerte,
		DateMesureVeille:  api.DateMesureVeille,
		DureeVeille:       api.DureeVeille,
		MesureVeille:      api.MesureVeille,
		Precision:         api.Precision,
	}
}

// ValidateMembers checks that a household carries at most one principal
// member. The upstream system does not enforce this, so records coming
// from the fallback snapshot or from detail fetches are verified here.
func (h Household) ValidateMembers() error {
	principals := 0
	for _, m := range h.Members {
		if m.IsPrincipal {
			principals++
		}
	}
	if principals > 1 {
		return fmt.Errorf("household %s has %d principal members", h.ID, principals)
	}
	return nil
}
