package report

// Rating is the severity rating from a test report header. Ratings
// order from most to least severe; a report without a rating sorts
// after the rated ones, unparseable values last of all.
type Rating struct {
	value string
}

var ratingOrder = map[string]int{
	"critical":  0,
	"important": 1,
	"moderate":  2,
	"low":       3,
	"":          4,
}

// Sort weight for ratings outside the known vocabulary.
const unknownRatingOrder = 10

// NewRating wraps a raw rating string.
func NewRating(value string) Rating {
	return Rating{value: value}
}

// Less orders ratings from most severe to absent.
func (r Rating) Less(other Rating) bool {
	return r.order() < other.order()
}

func (r Rating) order() int {
	if order, ok := ratingOrder[r.value]; ok {
		return order
	}

	return unknownRatingOrder
}

func (r Rating) String() string {
	return r.value
}
