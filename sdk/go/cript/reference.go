// Copyright (C) The CRIPT Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cript

// Reference is a bibliographic record: a paper, book, or web page.
// Unlike other primary nodes a Reference is immutable once saved.
type Reference struct {
	PrimaryBase
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Author    []string `json:"author,omitempty"`
	Journal   string   `json:"journal,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	Year      int      `json:"year,omitempty"`
	Volume    int      `json:"volume,omitempty"`
	Issue     int      `json:"issue,omitempty"`
	Pages     []int    `json:"pages,omitempty"`
	DOI       string   `json:"doi,omitempty"`
	ISSN      string   `json:"issn,omitempty"`
	ArXivID   string   `json:"arxiv_id,omitempty"`
	PMID      string   `json:"pmid,omitempty"`
	Website   string   `json:"website,omitempty"`
}

func (r *Reference) resourceName() string { return "reference" }

// NewReference returns a Reference with the given type and title.
// Types come from the reference_type vocabulary ("journal_article",
// "thesis", ...).
func NewReference(referenceType, title string) *Reference {
	r := &Reference{Type: referenceType, Title: title}
	r.NodeBase = newNodeBase("Reference")
	return r
}

// Citation attaches a Reference to a node with the role the reference
// plays there ("reference", "derived_from", ...).
type Citation struct {
	NodeBase
	Type      string     `json:"type"`
	Reference *Reference `json:"reference,omitempty"`
}

// NewCitation returns a Citation subobject for the given reference.
func NewCitation(citationType string, reference *Reference) *Citation {
	return &Citation{NodeBase: newNodeBase("Citation"), Type: citationType, Reference: reference}
}
