package entities

import (
	"fmt"
	"time"
)

// RegionCode identifies one of the regional hackathon venues.
type RegionCode string

const (
	RegionSouthEast   RegionCode = "sud-est"
	RegionCentreEast  RegionCode = "centre-est"
	RegionCentreWest  RegionCode = "centre-ouest"
	RegionNorthWest   RegionCode = "nord-ouest"
	RegionNationalFin RegionCode = "nationale"
)

// Region is the reference row for a venue. Version serializes quota commits;
// the quota count itself is always derived from the team set.
type Region struct {
	Code          RegionCode `json:"code"`
	Name          string     `json:"name"`
	HackathonDate time.Time  `json:"hackathonDate"`
	Version       int64      `json:"-"`
}

// DefaultRegions is the seed catalogue.
var DefaultRegions = []Region{
	{Code: RegionSouthEast, Name: "Sud-Est (Djerba)", HackathonDate: date(2026, 4, 3)},
	{Code: RegionCentreEast, Name: "Centre-Est (Sfax)", HackathonDate: date(2026, 4, 6)},
	{Code: RegionCentreWest, Name: "Centre-Ouest (Sousse)", HackathonDate: date(2026, 4, 8)},
	{Code: RegionNorthWest, Name: "Nord-Ouest (Bizerte)", HackathonDate: date(2026, 4, 15)},
	{Code: RegionNationalFin, Name: "Finale nationale (Tunis)", HackathonDate: date(2026, 4, 22)},
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseRegionCode(s string) (RegionCode, error) {
	for _, r := range DefaultRegions {
		if string(r.Code) == s {
			return r.Code, nil
		}
	}
	return "", fmt.Errorf("unknown region %q", s)
}
