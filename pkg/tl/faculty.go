package tl

type Faculty struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Rank       Rank    `json:"rank"`
	TargetLoad float64 `json:"target_load"` // annual hours this person should carry
	MaxLoad    float64 `json:"max_load"`    // annual hours this person must not exceed
	// preference score per activity id, 5..10 (higher = more willing)
	Preferences map[string]int `json:"preferences,omitempty"`
	// course ids this person can teach
	QualifiedCourses []string `json:"qualified_courses,omitempty"`
}

func (f *Faculty) Weight() float64 {
	return f.Rank.Weight()
}

func (f *Faculty) Preference(activityID string) int {
	return f.Preferences[activityID]
}
