package models

type Category struct {
	ID   int    `json:"id,omitempty" db:"category_id"`
	Name string `json:"name" binding:"required" db:"name"`
}
