package training

import "time"

// Mode tags an activity with the kind of measurement it records. The values
// are the user-facing category titles and are persisted verbatim.
type Mode string

const (
	ModeStrength Mode = "Fuerza"
	ModeDuration Mode = "Duración"
	ModeDistance Mode = "Distancia + Tiempo"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeStrength, ModeDuration, ModeDistance:
		return true
	}
	return false
}

// Session is one dated container of activities registered together in one
// wizard run (not to be confused with an authentication session).
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Activity is one sport entry within a session. Its mode is fixed at
// creation and decides which detail table it joins to.
type Activity struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
	Mode      Mode   `json:"mode"`
	SportName string `json:"sportName"`
}

type StrengthDetail struct {
	Series      int     `json:"series"`
	Repetitions int     `json:"repetitions"`
	Weight      float64 `json:"weight"`
}

type DurationDetail struct {
	// duration of the activity in seconds
	DurationSeconds int `json:"duration"`
}

type DistanceDetail struct {
	DistanceKm  float64 `json:"distance"`
	TimeSeconds int     `json:"time"`
	// pace in seconds per kilometer, supplied by the caller, never recomputed
	Pace int `json:"ritmo"`
}

// Detail is the mode-tagged measurement attached to one activity. Exactly
// one of the three payloads is set, matching Mode.
type Detail struct {
	ActivityID string          `json:"activityId"`
	Mode       Mode            `json:"mode"`
	Strength   *StrengthDetail `json:"strength,omitempty"`
	Duration   *DurationDetail `json:"duration,omitempty"`
	Distance   *DistanceDetail `json:"distance,omitempty"`
}

// SelectedSport is a sport picked by the user at the start of the wizard.
type SelectedSport struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"category"`
}

// DedupeSelectedSports removes duplicate selections by sport id, keeping the
// first occurrence and its position.
func DedupeSelectedSports(selected []SelectedSport) []SelectedSport {
	seen := make(map[string]bool, len(selected))
	unique := make([]SelectedSport, 0, len(selected))
	for _, sport := range selected {
		if seen[sport.ID] {
			continue
		}
		seen[sport.ID] = true
		unique = append(unique, sport)
	}
	return unique
}
