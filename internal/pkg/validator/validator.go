package validator

import (
	"fmt"
	"unicode/utf8"

	"github.com/samsontands/RAG/internal/entity"
)

// Validator checks requests coming from the chat front ends
type Validator struct {
	maxMessageLength int
}

func NewValidator(maxMessageLength int) *Validator {
	return &Validator{maxMessageLength: maxMessageLength}
}

// ValidateSubmitMessage rejects overlong messages. Blank text is valid here;
// the conversation treats it as a no-op.
func (v *Validator) ValidateSubmitMessage(req *entity.SubmitMessageRequest) error {
	if n := utf8.RuneCountInString(req.Text); n > v.maxMessageLength {
		return fmt.Errorf("%w: text is %d characters long, at most %d allowed",
			entity.ErrInvalidParameter, n, v.maxMessageLength)
	}
	return nil
}

// ParseTranscriptFormat maps the format query parameter; empty means markdown
func (v *Validator) ParseTranscriptFormat(raw string) (entity.TranscriptFormat, error) {
	if raw == "" {
		return entity.FormatMarkdown, nil
	}

	format := entity.TranscriptFormat(raw)
	if err := format.Validate(); err != nil {
		return "", err
	}
	return format, nil
}
