package models

// Book represents a single book record in a scope file.
// Name acts as the de-facto key: uniqueness is by name, case-insensitive,
// within a single scope, and is enforced on delete rather than on add.
type Book struct {
	Name            string `json:"name"`
	Author          string `json:"author"`
	PublicationYear int    `json:"year"`
}
