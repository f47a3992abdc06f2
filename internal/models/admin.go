package models

// Admin is a directory entry for a notice author.
type Admin struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
