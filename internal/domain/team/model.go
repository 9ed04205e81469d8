package team

// Record is one competing team with its flattened country sub-object.
// Upstream omits fields freely; zero values mean "not reported".
type Record struct {
	ID          int64
	Name        string
	Slug        string
	Country     string
	CountryCode string
	City        string
	Founded     int
}
