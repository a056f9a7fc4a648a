package model

// Well-known column names of the combined player dataset.
const (
	ColFullName           = "Fullname"
	ColYear               = "year"
	ColBirthDate          = "birth_date"
	ColPreferredPositions = "preferred_positions"
	ColWorkRate           = "work_rate"
	ColValue              = "value"
	ColAge                = "age"
)

// GoalkeeperPrefix marks attributes that only make sense for goalkeepers.
const GoalkeeperPrefix = "gk_"
