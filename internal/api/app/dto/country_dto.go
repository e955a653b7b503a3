package dto

import "geoprofiles/internal/api/domain/entities"

// CountryView - представление страны.
type CountryView struct {
	Name   string `json:"name"`
	Alpha2 string `json:"alpha2"`
	Alpha3 string `json:"alpha3"`
	Region string `json:"region"`
}

// NewCountryViews строит представления для списка стран. Пустой список дает пустой массив, а не null.
func NewCountryViews(countries []entities.Country) []CountryView {
	views := make([]CountryView, 0, len(countries))
	for _, c := range countries {
		views = append(views, NewCountryView(&c))
	}
	return views
}

// NewCountryView строит представление страны.
func NewCountryView(c *entities.Country) CountryView {
	return CountryView{Name: c.Name, Alpha2: c.Alpha2, Alpha3: c.Alpha3, Region: c.Region}
}
