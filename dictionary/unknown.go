package dictionary

// UnknownDictionary holds the unknown-word templates. Its target map is keyed
// by character class id.
type UnknownDictionary struct {
	*TokenInfoDictionary
	CharDef *CharacterDefinition
}

// NewUnknownDictionary returns an empty unknown dictionary over charDef.
func NewUnknownDictionary(charDef *CharacterDefinition) *UnknownDictionary {
	return &UnknownDictionary{TokenInfoDictionary: NewTokenInfoDictionary(), CharDef: charDef}
}

// LoadUnknownDictionary wraps the six persisted unknown-word buffers.
func LoadUnknownDictionary(records, features, targetMap, categoryMap, compatMap, invokeDef []byte) (*UnknownDictionary, error) {
	cd, err := LoadCharacterDefinition(categoryMap, compatMap, invokeDef)
	if err != nil {
		return nil, err
	}
	return &UnknownDictionary{
		TokenInfoDictionary: LoadTokenInfoDictionary(records, features, targetMap),
		CharDef:             cd,
	}, nil
}

// Lookup classifies ch.
func (u *UnknownDictionary) Lookup(ch rune) CharacterClass {
	return u.CharDef.Lookup(ch)
}
