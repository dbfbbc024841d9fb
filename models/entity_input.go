package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AuthorInput is the payload for creating or updating an author.
type AuthorInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (in AuthorInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&in.LastName, validation.NilOrNotEmpty, validation.Length(1, 200)),
	)
}

// Author builds a new row from the input
func (in AuthorInput) Author() *Author {
	return &Author{FirstName: in.FirstName, LastName: in.LastName}
}

// Values returns the columns to update; nil fields are skipped
func (in AuthorInput) Values() map[string]interface{} {
	values := make(map[string]interface{})
	if in.FirstName != nil {
		values["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		values["last_name"] = *in.LastName
	}
	return values
}

// TagInput is the payload for creating or updating a tag.
type TagInput struct {
	Name *string `json:"name"`
}

func (in TagInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

func (in TagInput) Tag() *Tag {
	return &Tag{Name: in.Name}
}

func (in TagInput) Values() map[string]interface{} {
	values := make(map[string]interface{})
	if in.Name != nil {
		values["name"] = *in.Name
	}
	return values
}
