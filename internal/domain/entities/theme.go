package entities

import "fmt"

// Theme is one of the competition's fixed challenge tracks.
type Theme string

const (
	ThemeUrbanManagement   Theme = "urban-management"
	ThemeCircularEconomy   Theme = "circular-economy"
	ThemeClimateAdaptation Theme = "climate-adaptation"
	ThemePublicFinance     Theme = "public-finance"
	ThemeHeritageYouth     Theme = "heritage-youth"
)

var themeLabels = map[Theme]string{
	ThemeUrbanManagement:   "Gestion urbaine et territoriale",
	ThemeCircularEconomy:   "Déchets et économie circulaire",
	ThemeClimateAdaptation: "Adaptation au changement climatique",
	ThemePublicFinance:     "Gestion administrative et financière",
	ThemeHeritageYouth:     "Patrimoine, culture et jeunesse",
}

// AllThemes lists the themes in display order.
var AllThemes = []Theme{
	ThemeUrbanManagement,
	ThemeCircularEconomy,
	ThemeClimateAdaptation,
	ThemePublicFinance,
	ThemeHeritageYouth,
}

func ParseTheme(s string) (Theme, error) {
	t := Theme(s)
	if _, ok := themeLabels[t]; !ok {
		return "", fmt.Errorf("unknown theme %q", s)
	}
	return t, nil
}

// Label returns the public display name.
func (t Theme) Label() string {
	if l, ok := themeLabels[t]; ok {
		return l
	}
	return string(t)
}
