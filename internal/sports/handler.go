package sports

import (
	"encoding/json"
	"net/http"

	"github.com/sportsfusion/sportsfusion/internal/telemetry/tracing"
	"github.com/sportsfusion/sportsfusion/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

type CategoryWithSports struct {
	Category
	Sports []*Sport `json:"sports"`
}

type ListResponse struct {
	Categories []CategoryWithSports `json:"categories"`
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "sportsHandler.list")
	defer span.End()

	var listResponse ListResponse
	for _, categoryID := range []string{CategoryStrength, CategoryDuration, CategoryDistance} {
		title, _ := CategoryTitle(categoryID)
		categorySports := handler.catalog.CategorySports[categoryID]
		if categorySports == nil {
			categorySports = make([]*Sport, 0)
		}
		listResponse.Categories = append(listResponse.Categories, CategoryWithSports{
			Category: Category{
				ID:    categoryID,
				Title: title,
			},
			Sports: categorySports,
		})
	}

	listRespJson, err := json.Marshal(listResponse)
	if err != nil {
		log.Errorf("failed to marshal sports catalog: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listRespJson, http.StatusOK)
}
