// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

import (
	"context"
	"fmt"
	"strings"
)

// VocabularyCategories lists the controlled vocabulary categories
// maintained by the service. Keys and types on subobjects must come
// from the matching category.
var VocabularyCategories = []string{
	"algorithm_key",
	"algorithm_type",
	"citation_type",
	"computation_type",
	"computational_forcefield_key",
	"computational_process_type",
	"condition_key",
	"data_type",
	"equipment_key",
	"file_type",
	"ingredient_keyword",
	"material_identifier_key",
	"material_keyword",
	"parameter_key",
	"process_keyword",
	"process_type",
	"property_key",
	"property_method",
	"quantity_key",
	"reference_type",
	"uncertainty_type",
}

// Vocabulary is the set of permitted values for one category.
type Vocabulary struct {
	Category string            `json:"category"`
	Strict   bool              `json:"strict"`
	Entries  []VocabularyEntry `json:"entries"`
}

// VocabularyEntry is one permitted value. AltNames are accepted
// spellings that Check reports back as the canonical Name.
type VocabularyEntry struct {
	Name        string   `json:"name"`
	AltNames    []string `json:"alt_names,omitempty"`
	Description string   `json:"description,omitempty"`
}

// InvalidVocabularyError indicates a value not permitted by its
// category. If the value matched an alternative spelling, Canonical
// holds the required one.
type InvalidVocabularyError struct {
	Category  string
	Value     string
	Canonical string
}

func (e *InvalidVocabularyError) Error() string {
	if e.Canonical != "" {
		return fmt.Sprintf("vocabulary value %q for category %q is an alias, must be provided as %q", e.Value, e.Category, e.Canonical)
	}
	return fmt.Sprintf("vocabulary value %q is not valid for category %q", e.Value, e.Category)
}

// InvalidVocabularyCategoryError indicates a category the service does
// not maintain.
type InvalidVocabularyCategoryError struct {
	Category string
	Valid    []string
}

func (e *InvalidVocabularyCategoryError) Error() string {
	return fmt.Sprintf("vocabulary category %q does not exist, valid categories are %s", e.Category, strings.Join(e.Valid, ", "))
}

// Check validates a value against the vocabulary. An alternative
// spelling of a permitted value is an error naming the canonical
// spelling; an unknown value is an error only when the category is
// strict.
func (v *Vocabulary) Check(value string) error {
	if v == nil {
		return nil
	}
	lcValue := strings.ToLower(value)
	for _, entry := range v.Entries {
		if entry.Name == value {
			return nil
		}
		if strings.ToLower(entry.Name) == lcValue {
			return &InvalidVocabularyError{Category: v.Category, Value: value, Canonical: entry.Name}
		}
		for _, alt := range entry.AltNames {
			if strings.EqualFold(alt, value) {
				return &InvalidVocabularyError{Category: v.Category, Value: value, Canonical: entry.Name}
			}
		}
	}
	if v.Strict {
		return &InvalidVocabularyError{Category: v.Category, Value: value}
	}
	return nil
}

// validate checks the vocabulary definition itself: names must be
// unique within the category, and no alternative spelling may collide
// with a name or another alternative.
func (v *Vocabulary) validate() error {
	names := map[string]string{}
	for _, entry := range v.Entries {
		lc := strings.ToLower(entry.Name)
		if names[lc] != "" {
			return fmt.Errorf("duplicate vocabulary entry %q in category %q", entry.Name, v.Category)
		}
		names[lc] = entry.Name
	}
	for _, entry := range v.Entries {
		for _, alt := range entry.AltNames {
			lc := strings.ToLower(alt)
			if prev, ok := names[lc]; ok && prev != entry.Name {
				return fmt.Errorf("alternative name %q of %q already used by %q in category %q", alt, entry.Name, prev, v.Category)
			}
			names[lc] = entry.Name
		}
	}
	return nil
}

// Vocabulary fetches the controlled vocabulary for a category,
// caching it for the lifetime of the client.
func (c *Client) Vocabulary(ctx context.Context, category string) (*Vocabulary, error) {
	known := false
	for _, cat := range VocabularyCategories {
		if cat == category {
			known = true
			break
		}
	}
	if !known {
		return nil, &InvalidVocabularyCategoryError{Category: category, Valid: VocabularyCategories}
	}
	cacheKey := "cv/" + category
	if cached, ok := c.cache().Get(cacheKey); ok {
		return cached.(*Vocabulary), nil
	}
	var voc Vocabulary
	err := c.RequestAndDecodeContext(ctx, &voc, "GET", "api/v1/cv/"+category, nil, nil)
	if err != nil {
		return nil, err
	}
	voc.Category = category
	if err := voc.validate(); err != nil {
		return nil, err
	}
	c.cache().Add(cacheKey, &voc)
	return &voc, nil
}
