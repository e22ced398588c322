package classifier

//go:generate go run github.com/dmarkham/enumer -type Category -trimprefix Category -json -text -output category_enumer.go

type Category int

const (
	CategoryEssentials Category = iota
	CategoryEmergency
	CategoryImpulse
)

// Categories returns the category names in declaration order.
func Categories() []string {
	names := make([]string, 0, len(CategoryValues()))
	for _, c := range CategoryValues() {
		names = append(names, c.String())
	}
	return names
}
