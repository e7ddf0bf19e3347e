package testdata

type Point struct {
	ID      int
	X, Y    float64
	Label   string
	a, b    int
	Owner   *User `rel:"belongs_to,foreign_key:owner_id"`
	OwnerID int
}
