package entities

// RegionStats summarises a region for the admin console.
type RegionStats struct {
	Region         RegionCode `json:"region"`
	Name           string     `json:"name"`
	Total          int64      `json:"total"`
	JuryValidated  int64      `json:"juryValidated"`
	FinalAccepted  int64      `json:"finalAccepted"`
	Quota          int        `json:"quota"`
	ValidationRate int        `json:"validationRate"`
	Candidates     int64      `json:"candidates"`
}

// AdminStats is the overview dashboard payload.
type AdminStats struct {
	TotalCandidates int64                          `json:"totalCandidates"`
	TotalTeams      int64                          `json:"totalTeams"`
	ByStatus        map[TeamStatus]int64           `json:"byStatus"`
	Regions         []RegionStats                  `json:"regions"`
	Distribution    map[RegionCode]map[Theme]int64 `json:"distribution"`
}

// RegionThemeCount is one cell of the region × theme matrix.
type RegionThemeCount struct {
	Region RegionCode
	Theme  Theme
	Count  int64
}
