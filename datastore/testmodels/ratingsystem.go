/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels holds value types used by the store tests.
package testmodels

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// RatingSystem is stored by pointer fields, as generated API models are.
type RatingSystem struct {

	// Unique identifier for the rating system.
	// Required: true
	ID *string `json:"Id" yaml:"Id" dynamodbav:"Id"`

	// Name of the rating system.
	// Required: true
	Name *string `json:"Name" yaml:"Name" dynamodbav:"Name"`

	// site Url
	SiteURL string `json:"SiteUrl,omitempty" yaml:"SiteUrl,omitempty" dynamodbav:"SiteUrl,omitempty"`

	// Levels lists the rating bands in ascending order.
	Levels []int `json:"Levels,omitempty" yaml:"Levels,omitempty" dynamodbav:"Levels,omitempty"`
}

// Clone returns a deep copy of r.
func (r RatingSystem) Clone() RatingSystem {
	out := r
	if r.ID != nil {
		id := *r.ID
		out.ID = &id
	}
	if r.Name != nil {
		name := *r.Name
		out.Name = &name
	}
	if r.Levels != nil {
		out.Levels = append([]int(nil), r.Levels...)
	}
	return out
}

// Audit records when a map was last touched; it relies on the default
// reflection based clone and equality.
type Audit struct {
	UpdatedAt strfmt.DateTime `json:"UpdatedAt" yaml:"UpdatedAt"`
	UpdatedBy string          `json:"UpdatedBy" yaml:"UpdatedBy"`
	Tags      []string        `json:"Tags,omitempty" yaml:"Tags,omitempty"`
}

// NewAudit returns an Audit stamped at t, truncated to seconds.
func NewAudit(by string, t time.Time, tags ...string) Audit {
	return Audit{
		UpdatedAt: strfmt.DateTime(t.UTC().Truncate(time.Second)),
		UpdatedBy: by,
		Tags:      tags,
	}
}
