package entities

// Evaluation is the compliance and ranking summary of a team snapshot.
type Evaluation struct {
	FiveMembers     bool `json:"fiveMembers"`
	GenderQuota     bool `json:"genderQuota"`
	HasDeliverables bool `json:"hasDeliverables"`
	HasDescription  bool `json:"hasDescription"`
	Score           int  `json:"score"`
	OK              bool `json:"ok"`
}

// RankedTeam is one row of a regional ranking.
type RankedTeam struct {
	Position    int        `json:"position"`
	Team        *Team      `json:"team"`
	MemberCount int        `json:"memberCount"`
	Evaluation  Evaluation `json:"evaluation"`
}

// TeamDetail is a team with its members and current evaluation.
type TeamDetail struct {
	Team       *Team         `json:"team"`
	Members    []*TeamMember `json:"members"`
	Evaluation Evaluation    `json:"evaluation"`
}

// TeamSummary is a listing row: the team, its size and its evaluation.
type TeamSummary struct {
	Team        *Team      `json:"team"`
	MemberCount int        `json:"memberCount"`
	Full        bool       `json:"full"`
	Evaluation  Evaluation `json:"evaluation"`
}
