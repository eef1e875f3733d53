package model

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// PetStatus is the pet's availability in the store.
type PetStatus string

const (
	PetStatusAvailable PetStatus = "available"
	PetStatusPending   PetStatus = "pending"
	PetStatusSold      PetStatus = "sold"
)

// PetStatuses lists every valid pet status.
var PetStatuses = []PetStatus{PetStatusAvailable, PetStatusPending, PetStatusSold}

// Valid reports whether s is one of PetStatuses.
func (s PetStatus) Valid() bool {
	for _, status := range PetStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParsePetStatuses parses a comma separated status filter.
func ParsePetStatuses(csv string) ([]PetStatus, error) {
	var statuses []PetStatus
	for _, value := range SplitCSV(csv) {
		status := PetStatus(strings.ToLower(value))
		if !status.Valid() {
			return nil, fmt.Errorf("unknown pet status %q", value)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Category groups pets of the same kind.
type Category struct {
	ID   int64  `json:"id" xml:"id"`
	Name string `json:"name" xml:"name"`
}

// Tag is a free-form label attached to a pet.
type Tag struct {
	ID   int64  `json:"id" xml:"id"`
	Name string `json:"name" xml:"name" validate:"required"`
}

// Pet is a pet in the store.
type Pet struct {
	XMLName   xml.Name  `json:"-" xml:"Pet"`
	ID        int64     `json:"id" xml:"id" validate:"min=0"`
	Category  *Category `json:"category,omitempty" xml:"category,omitempty"`
	Name      string    `json:"name" xml:"name" validate:"required" jsonschema:"required,example=doggie"`
	PhotoURLs []string  `json:"photoUrls" xml:"photoUrls>photoUrl" jsonschema:"required"`
	Tags      []Tag     `json:"tags" xml:"tags>tag" validate:"dive"`
	Status    PetStatus `json:"status,omitempty" xml:"status,omitempty" validate:"omitempty,oneof=available pending sold" jsonschema:"enum=available,enum=pending,enum=sold"`
}

func (p Pet) RecordID() int64 {
	return p.ID
}

// HasStatus reports whether the pet's status is one of statuses.
func (p Pet) HasStatus(statuses []PetStatus) bool {
	for _, status := range statuses {
		if p.Status == status {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the pet carries any of the named tags.
// Tag names compare case-insensitively.
func (p Pet) HasAnyTag(names []string) bool {
	for _, tag := range p.Tags {
		for _, name := range names {
			if strings.EqualFold(tag.Name, name) {
				return true
			}
		}
	}
	return false
}

// Pets is a list of pets; it encodes to XML as <pets><Pet/>...</pets>.
type Pets []Pet

func (p Pets) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	return encodeList(e, "pets", "Pet", p)
}
