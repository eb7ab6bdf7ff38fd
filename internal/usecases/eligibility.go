package usecases

import (
	"math"
	"net/url"
	"strings"

	"fnct-hackathon.backend/internal/config"
	"fnct-hackathon.backend/internal/domain/entities"
)

const (
	baseScoreWeight = 40.0
	maxScore        = 100.0
)

// Policy is the set of competition rules the engine enforces.
type Policy struct {
	TeamSize             int
	MinFemaleMembers     int
	MinDescriptionLength int
	RegionQuota          int
	MaxQualitativeScore  int
	SkillPoints          int
	ConflictRetries      int
}

// DefaultPolicy mirrors the configuration defaults.
func DefaultPolicy() Policy {
	return Policy{
		TeamSize:             5,
		MinFemaleMembers:     2,
		MinDescriptionLength: 20,
		RegionQuota:          10,
		MaxQualitativeScore:  40,
		SkillPoints:          5,
		ConflictRetries:      3,
	}
}

func PolicyFromConfig(cfg config.AdmissionConfig) Policy {
	return Policy{
		TeamSize:             cfg.TeamSize,
		MinFemaleMembers:     cfg.MinFemaleMembers,
		MinDescriptionLength: cfg.MinDescriptionLength,
		RegionQuota:          cfg.RegionQuota,
		MaxQualitativeScore:  cfg.MaxQualitativeScore,
		SkillPoints:          cfg.SkillPoints,
		ConflictRetries:      cfg.ConflictRetries,
	}
}

// Evaluator computes compliance flags and the ranking score of a team
// snapshot. It never touches storage and never fails.
type Evaluator struct {
	policy Policy
}

func NewEvaluator(policy Policy) *Evaluator {
	return &Evaluator{policy: policy}
}

func (e *Evaluator) Policy() Policy {
	return e.policy
}

// Evaluate is pure: the same snapshot always yields the same result.
func (e *Evaluator) Evaluate(team *entities.Team, members []*entities.TeamMember) entities.Evaluation {
	if team == nil {
		return entities.Evaluation{}
	}

	females := 0
	for _, m := range members {
		if m != nil && m.Candidate != nil && m.Candidate.Gender == entities.GenderFemale {
			females++
		}
	}

	ev := entities.Evaluation{
		FiveMembers:     len(members) == e.policy.TeamSize,
		GenderQuota:     females >= e.policy.MinFemaleMembers,
		HasDeliverables: IsDeliverableURL(team.MotivationURL.String) && IsDeliverableURL(team.VideoURL.String),
		HasDescription:  len([]rune(strings.TrimSpace(team.Description))) >= e.policy.MinDescriptionLength,
		Score:           e.score(len(members), team.RequestedSkills, team.QualitativeScore),
	}
	ev.OK = ev.FiveMembers && ev.GenderQuota && ev.HasDeliverables && ev.HasDescription
	return ev
}

func (e *Evaluator) score(memberCount int, skills []string, qualitative int) int {
	base := 0.0
	if e.policy.TeamSize > 0 {
		base = math.Min(float64(memberCount)/float64(e.policy.TeamSize), 1) * baseScoreWeight
	}
	bonus := float64(e.policy.SkillPoints * len(DistinctSkills(skills)))
	q := float64(clamp(qualitative, 0, e.policy.MaxQualitativeScore))
	return int(math.Round(math.Min(base+bonus+q, maxScore)))
}

// DistinctSkills trims, drops blanks and de-duplicates case-insensitively,
// keeping the first spelling seen.
func DistinctSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// IsDeliverableURL accepts absolute http(s) URLs with a host. No network access.
func IsDeliverableURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
