package rema

import (
	"strconv"
	"strings"
)

// Filters holds one substring per filterable column. Empty values match
// everything; non-empty values are combined with a logical AND.
type Filters struct {
	Nom        string
	Prenom     string
	IDSisiao   string
	Adresse    string
	CodePostal string
	Secteur    string
	Statut     string
}

func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Matches reports whether every non-empty filter value is a
// case-insensitive substring of the corresponding household field.
func (f Filters) Matches(h Household) bool {
	return containsFold(h.Nom, f.Nom) &&
		containsFold(h.Prenom, f.Prenom) &&
		containsFold(h.IDSisiao, f.IDSisiao) &&
		containsFold(h.Adresse, f.Adresse) &&
		containsFold(h.CodePostal, f.CodePostal) &&
		containsFold(strconv.Itoa(h.Secteur), f.Secteur) &&
		containsFold(h.Statut, f.Statut)
}

// FilterHouseholds returns the households matching f, preserving order.
// It is a pure function of its inputs and never mutates the given slice.
func FilterHouseholds(households []Household, f Filters) []Household {
	filtered := make([]Household, 0, len(households))
	for _, h := range households {
		if f.Matches(h) {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

func containsFold(value, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}
