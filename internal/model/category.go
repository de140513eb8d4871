// Package model holds the entity records of the bookkeeper.
package model

import "fmt"

// NoCategory is the category key of expenses whose category was deleted.
// It is never persisted as a Category row.
const NoCategory int64 = 0

// DeletedCategoryLabel is shown in place of the name of a category that no longer exists.
const DeletedCategoryLabel = "Deleted category"

// Category is a user-defined spending category. Names are expected to be
// unique but storage does not enforce it.
type Category struct {
	Name string
	PK   int64
}

// NewCategory creates a category. The primary key is optional and stays 0 until persisted.
func NewCategory(name string, pk ...int64) Category {
	c := Category{Name: name}
	if len(pk) > 0 {
		c.PK = pk[0]
	}
	return c
}

// Equal reports whether both categories hold the same values.
func (c Category) Equal(other Category) bool {
	return c == other
}

func (c Category) String() string {
	return fmt.Sprintf("Category(pk=%d, name=%q)", c.PK, c.Name)
}
