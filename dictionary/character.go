package dictionary

import (
	"errors"
	"fmt"

	"morphja/bytecodec"
)

// DefaultCategory is the class every unclassified character falls back to.
const DefaultCategory = "DEFAULT"

// CodeSpace is the number of UCS-2 code points covered by the category tables.
const CodeSpace = 0x10000

var (
	// ErrNoDefaultClass is returned when the class table lacks DEFAULT.
	ErrNoDefaultClass = errors.New("dictionary: no DEFAULT character class")
	// ErrUnknownClass is returned when a mapping names an undefined class.
	ErrUnknownClass = errors.New("dictionary: unknown character class")
	// ErrCompatibleClassRange is returned when a compatible class id does
	// not fit the 32-bit compatibility bitset.
	ErrCompatibleClassRange = errors.New("dictionary: compatible class id outside 0..31")
)

// CharacterClass is one unknown-word character category.
type CharacterClass struct {
	ID   int
	Name string
	// AlwaysInvoke forces an unknown-word candidate even when dictionary words match.
	AlwaysInvoke bool
	// Grouping extends the candidate over the following run of same-class characters.
	Grouping  bool
	MaxLength int
}

// InvokeDefinitionMap is the ordered table of character classes. A class id
// is its index in the table.
type InvokeDefinitionMap struct {
	classes []CharacterClass
	byName  map[string]int
}

// NewInvokeDefinitionMap builds the table, renumbering ids by position.
func NewInvokeDefinitionMap(classes []CharacterClass) *InvokeDefinitionMap {
	m := &InvokeDefinitionMap{byName: make(map[string]int, len(classes))}
	for i, c := range classes {
		c.ID = i
		m.classes = append(m.classes, c)
		m.byName[c.Name] = i
	}
	return m
}

// LoadInvokeDefinitionMap parses repeated
// {byte always_invoke, byte grouping, int32 max_length, string name} records.
func LoadInvokeDefinitionMap(b []byte) *InvokeDefinitionMap {
	buf := bytecodec.Wrap(b)
	var classes []CharacterClass
	for buf.Position()+1 < buf.Size() {
		c := CharacterClass{
			AlwaysInvoke: buf.GetByte() == 1,
			Grouping:     buf.GetByte() == 1,
			MaxLength:    int(buf.GetInt32()),
		}
		c.Name = buf.GetString()
		classes = append(classes, c)
	}
	return NewInvokeDefinitionMap(classes)
}

// Class returns the class with the given id.
func (m *InvokeDefinitionMap) Class(id int) (CharacterClass, bool) {
	if id < 0 || id >= len(m.classes) {
		return CharacterClass{}, false
	}
	return m.classes[id], true
}

// Lookup returns the id of the class called name.
func (m *InvokeDefinitionMap) Lookup(name string) (int, bool) {
	id, ok := m.byName[name]
	return id, ok
}

// Len returns the number of classes.
func (m *InvokeDefinitionMap) Len() int { return len(m.classes) }

// Bytes serialises the table.
func (m *InvokeDefinitionMap) Bytes() []byte {
	buf := bytecodec.NewBuffer(len(m.classes) * 16)
	for _, c := range m.classes {
		buf.PutByte(boolByte(c.AlwaysInvoke))
		buf.PutByte(boolByte(c.Grouping))
		_ = buf.PutInt32(int64(uint32(int32(c.MaxLength))))
		buf.PutString(c.Name)
	}
	return buf.Shrink()
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// CharacterDefinition classifies characters for unknown-word processing.
type CharacterDefinition struct {
	categoryMap []byte
	compatMap   []uint32
	Invoke      *InvokeDefinitionMap
	defaultID   int
}

// NewCharacterDefinition returns a definition with every code point mapped to DEFAULT.
func NewCharacterDefinition(invoke *InvokeDefinitionMap) (*CharacterDefinition, error) {
	def, ok := invoke.Lookup(DefaultCategory)
	if !ok {
		return nil, ErrNoDefaultClass
	}
	cd := &CharacterDefinition{
		categoryMap: make([]byte, CodeSpace),
		compatMap:   make([]uint32, CodeSpace),
		Invoke:      invoke,
		defaultID:   def,
	}
	for i := range cd.categoryMap {
		cd.categoryMap[i] = byte(def)
	}
	return cd, nil
}

// LoadCharacterDefinition wraps the persisted category map, compat map and class table.
func LoadCharacterDefinition(categoryMap, compatMap, invokeDef []byte) (*CharacterDefinition, error) {
	invoke := LoadInvokeDefinitionMap(invokeDef)
	def, ok := invoke.Lookup(DefaultCategory)
	if !ok {
		return nil, ErrNoDefaultClass
	}
	compat := bytecodec.Wrap(compatMap)
	cd := &CharacterDefinition{
		categoryMap: categoryMap,
		compatMap:   make([]uint32, len(compatMap)/4),
		Invoke:      invoke,
		defaultID:   def,
	}
	for i := range cd.compatMap {
		cd.compatMap[i] = uint32(compat.Int32At(i * 4))
	}
	return cd, nil
}

// SetCategory maps the code points lo..hi to the class named primary and
// records the compatible classes in the secondary bitset.
func (cd *CharacterDefinition) SetCategory(lo, hi rune, primary string, compatible ...string) error {
	if lo < 0 || hi >= CodeSpace || lo > hi {
		return fmt.Errorf("dictionary: code point range %#x..%#x outside the BMP", lo, hi)
	}
	id, ok := cd.Invoke.Lookup(primary)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClass, primary)
	}
	var bits uint32
	for _, name := range compatible {
		cid, ok := cd.Invoke.Lookup(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownClass, name)
		}
		if cid < 0 || cid >= 32 {
			return fmt.Errorf("%w: %s has id %d", ErrCompatibleClassRange, name, cid)
		}
		bits |= 1 << uint(cid)
	}
	for ch := lo; ch <= hi; ch++ {
		cd.categoryMap[ch] = byte(id)
		cd.compatMap[ch] |= bits
	}
	return nil
}

// Lookup returns the primary class of ch. Characters outside the BMP and
// characters whose entry names no class resolve to DEFAULT.
func (cd *CharacterDefinition) Lookup(ch rune) CharacterClass {
	id := cd.defaultID
	if ch >= 0 && int(ch) < len(cd.categoryMap) {
		id = int(cd.categoryMap[ch])
	}
	if c, ok := cd.Invoke.Class(id); ok {
		return c
	}
	c, _ := cd.Invoke.Class(cd.defaultID)
	return c
}

// LookupCompatibleCategory returns every class whose bit is set in the
// compatible bitset of ch.
func (cd *CharacterDefinition) LookupCompatibleCategory(ch rune) []CharacterClass {
	if ch < 0 || int(ch) >= len(cd.compatMap) {
		return nil
	}
	bits := cd.compatMap[ch]
	var out []CharacterClass
	for bit := 0; bit < 32 && bits != 0; bit++ {
		if bits&(1<<uint(bit)) == 0 {
			continue
		}
		if c, ok := cd.Invoke.Class(bit); ok {
			out = append(out, c)
		}
	}
	return out
}

// Bytes returns the category map, compat map and class table in persisted form.
func (cd *CharacterDefinition) Bytes() (categoryMap, compatMap, invokeDef []byte) {
	buf := bytecodec.NewBuffer(len(cd.compatMap) * 4)
	for _, v := range cd.compatMap {
		_ = buf.PutInt32(int64(v))
	}
	return cd.categoryMap, buf.Shrink(), cd.Invoke.Bytes()
}
