package configuration

import (
	"encoding/json"
	"strings"

	"github.com/ralt/jarbundler/internal/models"
)

// Field describes one configurable setting. Keys the metatype and preferences
// writers do not understand are ignored.
type Field struct {
	Type        string          `json:"type,omitempty"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Default     json.RawMessage `json:"default,omitempty"`
	Required    *bool           `json:"required,omitempty"`
	Repeatable  bool            `json:"repeatable,omitempty"`

	// Option value -> label, in declaration order
	Options *models.OrderedMap[json.RawMessage] `json:"options,omitempty"`
}

// Option is a single selectable value of a field
type Option struct {
	Value string
	Label string
}

// DefaultString renders the default value as text.
// Strings are unquoted, arrays are joined with commas and other scalars keep
// their JSON spelling.
func (f *Field) DefaultString() (string, bool) {
	if len(f.Default) == 0 || string(f.Default) == "null" {
		return "", false
	}

	var list []json.RawMessage
	if err := json.Unmarshal(f.Default, &list); err == nil {
		items := make([]string, 0, len(list))
		for _, item := range list {
			items = append(items, rawText(item))
		}
		return strings.Join(items, ","), true
	}

	return rawText(f.Default), true
}

// OptionList returns the field's options in declaration order
func (f *Field) OptionList() []Option {
	var opts []Option
	_ = f.Options.Each(func(value string, label json.RawMessage) error {
		opts = append(opts, Option{Value: value, Label: rawText(label)})
		return nil
	})
	return opts
}

func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
