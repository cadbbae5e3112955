package checker

import (
	"fmt"

	"tzcheck/internal/attrs"
	"tzcheck/internal/types"
)

// allAttributes lists the seven type attributes in the order attrs.go
// documents them.
var allAttributes = []attrs.Attribute{
	attrs.Comparable,
	attrs.Passable,
	attrs.Pushable,
	attrs.Storable,
	attrs.Packable,
	attrs.BigMapLegal,
	attrs.Duplicable,
}

// attributeNotes renders t's full attribute table, pass or fail, so a
// parameter/storage AttributeViolation shows why the type was rejected
// rather than just which single attribute it was checked against.
func attributeNotes(t types.GType) []string {
	notes := make([]string, 0, len(allAttributes))
	for _, a := range allAttributes {
		notes = append(notes, attributeLine(a, attrs.Check(a, t)))
	}
	return notes
}

// requiredAttributeNotes renders only the attributes an argument was
// actually required to satisfy, in the order the schema lists them.
func requiredAttributeNotes(t types.GType, want []attrs.Attribute) []string {
	notes := make([]string, 0, len(want))
	for _, a := range want {
		notes = append(notes, attributeLine(a, attrs.Check(a, t)))
	}
	return notes
}

func attributeLine(a attrs.Attribute, ok bool) string {
	if ok {
		return fmt.Sprintf("%s: yes", a)
	}
	return fmt.Sprintf("%s: no", a)
}
