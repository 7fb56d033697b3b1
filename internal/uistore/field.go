package uistore

import "strings"

// Field identifies one observable part of the store. Values combine as a bit
// set so a single mutation can report several changed fields.
type Field uint16

const (
	FieldTheme Field = 1 << iota
	FieldActiveModal
	FieldActiveDocument
	FieldActiveCollection
	FieldProgressBar
	FieldEditMode
	FieldTOC
	FieldMobileSidebar
	FieldToasts
)

// FieldAll matches every field.
const FieldAll = FieldTheme | FieldActiveModal | FieldActiveDocument | FieldActiveCollection |
	FieldProgressBar | FieldEditMode | FieldTOC | FieldMobileSidebar | FieldToasts

// PersistedFields are the fields whose change triggers a save.
const PersistedFields = FieldTheme | FieldTOC

var fieldNames = []struct {
	field Field
	name  string
}{
	{FieldTheme, "theme"},
	{FieldActiveModal, "activeModal"},
	{FieldActiveDocument, "activeDocument"},
	{FieldActiveCollection, "activeCollection"},
	{FieldProgressBar, "progressBar"},
	{FieldEditMode, "editMode"},
	{FieldTOC, "toc"},
	{FieldMobileSidebar, "mobileSidebar"},
	{FieldToasts, "toasts"},
}

// Has reports whether f shares any bit with other.
func (f Field) Has(other Field) bool { return f&other != 0 }

func (f Field) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range fieldNames {
		if f.Has(fn.field) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}
