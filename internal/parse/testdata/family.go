package testdata

type Parent struct {
	ID            int
	FavoriteChild *FavoriteChild `rel:"has_one,foreign_key:parent_id,back_populates:Parent"`
	Children      []Child        `rel:"has_many,foreign_key:parent_id,back_populates:Parent"`
	Neighbours    []Neighbour    `rel:"many_to_many,join_table:association,foreign_key:parent_id,references:neighbour_id"`
}

func (Parent) TableName() string { return "parent" }

type FavoriteChild struct {
	ID       int
	ParentID int
	Parent   *Parent `rel:"belongs_to,foreign_key:parent_id,unique,back_populates:FavoriteChild"`
}

func (*FavoriteChild) TableName() string { return "favorite_child" }

type Child struct {
	ID       int
	ParentID int
	Parent   *Parent `rel:"belongs_to,foreign_key:parent_id,back_populates:Children"`
}

type Neighbour struct {
	ID      int
	Parents []Parent `rel:"many_to_many,join_table:association,foreign_key:neighbour_id,references:parent_id"`
}

// Headache has no reciprocal attribute on Parent.
type Headache struct {
	ID       int
	ParentID *int
	Parent   *Parent `rel:"belongs_to,foreign_key:parent_id"`
}
