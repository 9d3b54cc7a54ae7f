// Package ipadic maps IPADIC feature strings to tokens.
package ipadic

import (
	"morphja/model"
	"morphja/viterbi"
)

// Feature field layout of a resolved IPADIC entry. Field 0 is the surface
// form, as stored in front of the features.
const (
	fieldSurface = iota
	fieldPOS
	fieldPOSDetail1
	fieldPOSDetail2
	fieldPOSDetail3
	fieldConjugatedType
	fieldConjugatedForm
	fieldBasicForm
	fieldReading
	fieldPronunciation
)

// Formatter builds model tokens from IPADIC features. The zero value is ready
// to use.
type Formatter struct{}

func field(f []string, i int) string {
	if i < len(f) {
		return f[i]
	}
	return ""
}

// FormatEntry formats a dictionary word.
func (Formatter) FormatEntry(wordID int32, position int, typ viterbi.NodeType, features []string) model.Token {
	return model.Token{
		WordID:         wordID,
		WordType:       typ.String(),
		WordPosition:   position,
		SurfaceForm:    field(features, fieldSurface),
		POS:            field(features, fieldPOS),
		POSDetail1:     field(features, fieldPOSDetail1),
		POSDetail2:     field(features, fieldPOSDetail2),
		POSDetail3:     field(features, fieldPOSDetail3),
		ConjugatedType: field(features, fieldConjugatedType),
		ConjugatedForm: field(features, fieldConjugatedForm),
		BasicForm:      field(features, fieldBasicForm),
		Reading:        field(features, fieldReading),
		Pronunciation:  field(features, fieldPronunciation),
	}
}

// FormatUnknownEntry formats a synthesized word. The surface comes from the
// input since the template's field 0 is the class name; unknown words have
// no reading.
func (Formatter) FormatUnknownEntry(wordID int32, position int, typ viterbi.NodeType, features []string, surface string) model.Token {
	return model.Token{
		WordID:         wordID,
		WordType:       typ.String(),
		WordPosition:   position,
		SurfaceForm:    surface,
		POS:            field(features, fieldPOS),
		POSDetail1:     field(features, fieldPOSDetail1),
		POSDetail2:     field(features, fieldPOSDetail2),
		POSDetail3:     field(features, fieldPOSDetail3),
		ConjugatedType: field(features, fieldConjugatedType),
		ConjugatedForm: field(features, fieldConjugatedForm),
		BasicForm:      field(features, fieldBasicForm),
	}
}
