package validator

import (
	"strings"
	"testing"

	"github.com/samsontands/RAG/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSubmitMessage(t *testing.T) {
	v := NewValidator(5)

	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "blank", text: "  "},
		{name: "at limit", text: "hello"},
		{name: "multibyte at limit", text: "héllö"},
		{name: "too long", text: "hello!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSubmitMessage(&entity.SubmitMessageRequest{Text: tt.text})
			if tt.wantErr {
				assert.ErrorIs(t, err, entity.ErrInvalidParameter)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.NoError(t, NewValidator(4000).ValidateSubmitMessage(&entity.SubmitMessageRequest{Text: strings.Repeat("a", 4000)}))
}

func TestParseTranscriptFormat(t *testing.T) {
	v := NewValidator(10)

	format, err := v.ParseTranscriptFormat("")
	require.NoError(t, err)
	assert.Equal(t, entity.FormatMarkdown, format)

	format, err = v.ParseTranscriptFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, entity.FormatPDF, format)

	_, err = v.ParseTranscriptFormat("rtf")
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}
