package blueprint

import (
	"fmt"
	"strings"

	"github.com/erraggy/blueprints/fieldpath"
	"github.com/erraggy/blueprints/tree"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label returns the display label of a field: its "label" value when set,
// otherwise the field name title-cased, without alias dots and with
// underscores and dashes as spaces.
func Label(name string, field *tree.Map) string {
	if v, ok := field.Get("label"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}

	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == ' '
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// FieldInfo summarizes one form field.
type FieldInfo struct {
	// Path holds the field names from the form root.
	Path []string
	// Type is the field's "type" value, if any.
	Type string
	// Label is the display label, see Label.
	Label string
	// Array reports whether the field is repeatable.
	Array bool
}

// FieldList flattens the form fields in document order.
func (b *Blueprint) FieldList() []FieldInfo {
	var out []FieldInfo
	fieldpath.Walk(b.Fields(), func(path []string, node *tree.Map) bool {
		info := FieldInfo{
			Path:  path,
			Label: Label(path[len(path)-1], node),
			Array: fieldpath.IsArray(node),
		}
		if v, ok := node.Get("type"); ok && v != nil {
			info.Type = fmt.Sprint(v)
		}
		out = append(out, info)
		return true
	})
	return out
}
