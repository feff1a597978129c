package sports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Catalog struct {
	Sports         []*Sport
	CategorySports map[string][]*Sport
	sportsByID     map[string]*Sport
}

// NewCatalog reads the sports CSV (NAME;CATEGORY_ID per record) once at
// startup. Sport ids are slugs derived from the name.
func NewCatalog(sportsCsvReader *csv.Reader) (*Catalog, error) {
	c := &Catalog{}
	c.CategorySports = make(map[string][]*Sport)
	c.sportsByID = make(map[string]*Sport)

	log.Println("reading sports CSV ...")

	sportsCsvReader.Comma = ';'
	for {
		record, err := sportsCsvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) != 2 {
			return nil, fmt.Errorf("record [%s] does not have 2 elements", record)
		}

		// NAME;CATEGORY_ID
		name := record[0]
		categoryID := record[1]

		categoryTitle, ok := CategoryTitle(categoryID)
		if !ok {
			return nil, fmt.Errorf("sport [%s] has unknown category [%s]", name, categoryID)
		}

		sport := &Sport{
			ID:   slug(name),
			Name: name,
			Category: Category{
				ID:    categoryID,
				Title: categoryTitle,
			},
		}

		if _, exists := c.sportsByID[sport.ID]; exists {
			return nil, fmt.Errorf("duplicate sport [%s]", name)
		}

		c.Sports = append(c.Sports, sport)
		c.CategorySports[categoryID] = append(c.CategorySports[categoryID], sport)
		c.sportsByID[sport.ID] = sport
	}

	log.Printf("sports CSV read %d sports", len(c.Sports))

	return c, nil
}

func (c *Catalog) Get(id string) (*Sport, bool) {
	sport, ok := c.sportsByID[id]
	return sport, ok
}

func slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(s, " ", "-")
}
