package models

import "github.com/google/uuid"

// DialogKind selects how a dialog is rendered and resolved.
type DialogKind string

const (
	DialogConfirmation DialogKind = "confirm"
	DialogInput        DialogKind = "input"
)

// Dialog is a modal prompt waiting for the visitor's answer.
type Dialog struct {
	ID                string     `json:"id"`
	Kind              DialogKind `json:"kind"`
	Title             string     `json:"title"`
	Prompt            string     `json:"prompt"`
	InputPrompt       string     `json:"input_prompt,omitempty"`
	InputValue        string     `json:"-"`
	Masked            bool       `json:"masked,omitempty"`
	CancelButtonLabel string     `json:"cancel_button_label"`
	SubmitButtonLabel string     `json:"submit_button_label"`
	Step              string     `json:"step,omitempty"` // which flow step resolves this dialog
}

// NewConfirmation creates an OK-only dialog.
func NewConfirmation(title, prompt string) *Dialog {
	return &Dialog{
		ID:                uuid.NewString(),
		Kind:              DialogConfirmation,
		Title:             title,
		Prompt:            prompt,
		CancelButtonLabel: "Cancel",
		SubmitButtonLabel: "Ok",
	}
}

// NewInput creates a dialog asking for a single value.
func NewInput(title, inputPrompt string) *Dialog {
	return &Dialog{
		ID:                uuid.NewString(),
		Kind:              DialogInput,
		Title:             title,
		InputPrompt:       inputPrompt,
		CancelButtonLabel: "Cancel",
		SubmitButtonLabel: "Submit",
	}
}

// IsInput reports whether the dialog collects a value.
func (d *Dialog) IsInput() bool {
	return d.Kind == DialogInput
}

// DialogResult is the visitor's answer to a dialog.
type DialogResult struct {
	DialogID  string
	Value     string
	Cancelled bool
}
