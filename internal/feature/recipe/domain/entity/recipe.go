// Package entity defines the domain entities for the recipe feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe represents a recipe owned by exactly one user.
// Tags and Ingredients are many-to-many associations, both also user-owned.
type Recipe struct {
	// ID is the unique identifier for the recipe.
	ID uint `gorm:"primaryKey"`

	// UserID is the owning user. Every query is scoped to it.
	UserID uint `gorm:"index;not null"`

	// Title is the recipe's display title.
	Title string `gorm:"size:255;not null"`

	// TimeMinutes is the estimated preparation time.
	TimeMinutes int `gorm:"not null"`

	// Price is the estimated cost, stored as an exact decimal.
	Price decimal.Decimal `gorm:"type:numeric(5,2)"`

	// Description is free-form text. Omitted from list responses.
	Description string

	// Link is an optional external URL for the recipe.
	Link string `gorm:"size:255"`

	// ImagePath is where the uploaded image is served from. Empty until an
	// image has been uploaded.
	ImagePath string `gorm:"size:512"`

	Tags        []Tag        `gorm:"many2many:recipe_tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tag is a user-owned label attached to zero or more recipes.
// Names are deduplicated per user on creation, not globally.
type Tag struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"index;not null"`
	Name   string `gorm:"size:255;not null"`
}

// Ingredient is a user-owned label attached to zero or more recipes.
type Ingredient struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"index;not null"`
	Name   string `gorm:"size:255;not null"`
}
