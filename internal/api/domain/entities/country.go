package entities

// Country - запись справочника стран. Не изменяется через API.
type Country struct {
	Name   string
	Alpha2 string
	Alpha3 string
	Region string
}
