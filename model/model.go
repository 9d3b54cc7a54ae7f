// Package model holds the token records returned to callers.
package model

// Token is one analyzed word in the IPADIC field layout. Feature fields the
// dictionary leaves out are empty strings.
type Token struct {
	WordID int32 `json:"word_id" yaml:"word_id"`
	// WordType is KNOWN or UNKNOWN.
	WordType string `json:"word_type" yaml:"word_type"`
	// WordPosition is the 1-based character position of the word in the
	// whole input.
	WordPosition   int    `json:"word_position" yaml:"word_position"`
	SurfaceForm    string `json:"surface_form" yaml:"surface_form"`
	POS            string `json:"pos" yaml:"pos"`
	POSDetail1     string `json:"pos_detail_1" yaml:"pos_detail_1"`
	POSDetail2     string `json:"pos_detail_2" yaml:"pos_detail_2"`
	POSDetail3     string `json:"pos_detail_3" yaml:"pos_detail_3"`
	ConjugatedType string `json:"conjugated_type" yaml:"conjugated_type"`
	ConjugatedForm string `json:"conjugated_form" yaml:"conjugated_form"`
	BasicForm      string `json:"basic_form" yaml:"basic_form"`
	Reading        string `json:"reading,omitempty" yaml:"reading,omitempty"`
	Pronunciation  string `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
}

// Known reports whether the token came from the dictionary.
func (t Token) Known() bool { return t.WordType == "KNOWN" }

// Divergence is one disagreement between our segmentation and a reference
// analyzer at a given position.
type Divergence struct {
	Position int    `json:"position" yaml:"position"`
	Got      string `json:"got,omitempty" yaml:"got,omitempty"`
	Want     string `json:"want,omitempty" yaml:"want,omitempty"`
}
