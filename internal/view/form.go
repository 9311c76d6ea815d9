package view

// Field is a free-text input.
type Field struct {
	Name  string
	Label string
	Value string
}

// Option is one entry of a select.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Form is a set of text fields, one select and fixed hidden values.
type Form struct {
	Hidden     map[string]string
	SelectName string
	Selected   string
	Fields     []Field
	Options    []Option
}

// Values serializes every field, the select and the hidden values.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.Fields)+len(f.Hidden)+1)
	for _, fld := range f.Fields {
		out[fld.Name] = fld.Value
	}
	if f.SelectName != "" {
		out[f.SelectName] = f.Selected
	}
	for k, v := range f.Hidden {
		out[k] = v
	}
	return out
}

// SetField updates the named text field.
func (f *Form) SetField(name, value string) {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			f.Fields[i].Value = value
			return
		}
	}
}

// Field returns the named text field's value.
func (f *Form) Field(name string) string {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld.Value
		}
	}
	return ""
}

// SetOptions replaces the select's options entirely.
func (f *Form) SetOptions(opts []Option) {
	f.Options = append([]Option(nil), opts...)
	f.Selected = f.defaultSelection()
}

// Select picks an option by value. Unknown values are ignored.
func (f *Form) Select(value string) {
	for _, o := range f.Options {
		if o.Value == value {
			f.Selected = value
			return
		}
	}
}

// Reset clears text fields and returns the select to its default option.
func (f *Form) Reset() {
	for i := range f.Fields {
		f.Fields[i].Value = ""
	}
	f.Selected = f.defaultSelection()
}

func (f *Form) defaultSelection() string {
	for _, o := range f.Options {
		if o.Selected {
			return o.Value
		}
	}
	if len(f.Options) > 0 {
		return f.Options[0].Value
	}
	return ""
}
