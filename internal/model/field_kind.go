package model

import (
	"errors"
	"strconv"
	"strings"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldTextarea FieldType = "textarea"
	FieldBoolean  FieldType = "boolean"
)

var FieldTypes = []FieldType{FieldText, FieldNumber, FieldDate, FieldTextarea, FieldBoolean}

// FieldKind describes how a dynamic field is entered and checked. Answers
// are always stored as the submitted text.
type FieldKind interface {
	Type() FieldType
	Label() string
	InputType() string
	Check(raw string) error
}

type textKind struct{}

func (textKind) Type() FieldType    { return FieldText }
func (textKind) Label() string      { return "Text" }
func (textKind) InputType() string  { return "text" }
func (textKind) Check(string) error { return nil }

type textareaKind struct{}

func (textareaKind) Type() FieldType    { return FieldTextarea }
func (textareaKind) Label() string      { return "Textarea" }
func (textareaKind) InputType() string  { return "textarea" }
func (textareaKind) Check(string) error { return nil }

type booleanKind struct{}

func (booleanKind) Type() FieldType    { return FieldBoolean }
func (booleanKind) Label() string      { return "Checkbox" }
func (booleanKind) InputType() string  { return "checkbox" }
func (booleanKind) Check(string) error { return nil }

type numberKind struct{}

func (numberKind) Type() FieldType   { return FieldNumber }
func (numberKind) Label() string     { return "Number" }
func (numberKind) InputType() string { return "number" }

func (numberKind) Check(raw string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
		return errors.New("Enter a number.")
	}
	return nil
}

type dateKind struct{}

func (dateKind) Type() FieldType   { return FieldDate }
func (dateKind) Label() string     { return "Date" }
func (dateKind) InputType() string { return "date" }

func (dateKind) Check(raw string) error {
	if _, err := ParseDate(strings.TrimSpace(raw)); err != nil {
		return errors.New("Enter a valid date.")
	}
	return nil
}

var fieldKinds = map[FieldType]FieldKind{
	FieldText:     textKind{},
	FieldNumber:   numberKind{},
	FieldDate:     dateKind{},
	FieldTextarea: textareaKind{},
	FieldBoolean:  booleanKind{},
}

func (t FieldType) Valid() bool {
	_, ok := fieldKinds[t]
	return ok
}

// Kind returns the capability value for t. Unknown types behave as text.
func (t FieldType) Kind() FieldKind {
	if k, ok := fieldKinds[t]; ok {
		return k
	}
	return textKind{}
}
