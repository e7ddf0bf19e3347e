package model

//go:generate go tool relkind -source=$GOFILE

type Parent struct {
	ID            int
	Name          string
	FavoriteChild *FavoriteChild `rel:"has_one,foreign_key:parent_id,back_populates:Parent"`
	Children      []Child        `rel:"has_many,foreign_key:parent_id,back_populates:Parent"`
	Neighbours    []Neighbour    `rel:"many_to_many,join_table:association,foreign_key:parent_id,references:neighbour_id,back_populates:Parents"`
}

type FavoriteChild struct {
	ID       int
	ParentID int
	Name     string
	Parent   *Parent `rel:"belongs_to,foreign_key:parent_id,unique,back_populates:FavoriteChild"`
}

type Child struct {
	ID       int
	ParentID int
	Name     string
	Parent   *Parent `rel:"belongs_to,foreign_key:parent_id,back_populates:Children"`
}

type Neighbour struct {
	ID      int
	Name    string
	Parents []Parent `rel:"many_to_many,join_table:association,foreign_key:neighbour_id,references:parent_id,back_populates:Neighbours"`
}

type Headache struct {
	ID       int
	ParentID *int
	Parent   *Parent `rel:"belongs_to,foreign_key:parent_id"`
}
