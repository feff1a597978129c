package sports

// Category ids are stable machine names; titles are the user-facing mode
// names persisted verbatim on activities.
const (
	CategoryStrength = "strength"
	CategoryDuration = "duration"
	CategoryDistance = "distance"
)

var categoryTitles = map[string]string{
	CategoryStrength: "Fuerza",
	CategoryDuration: "Duración",
	CategoryDistance: "Distancia + Tiempo",
}

type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Sport struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

func CategoryTitle(categoryID string) (string, bool) {
	title, ok := categoryTitles[categoryID]
	return title, ok
}
