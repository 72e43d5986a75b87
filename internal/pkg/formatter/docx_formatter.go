package formatter

import (
	"bytes"

	"github.com/samsontands/RAG/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(transcript *entity.Transcript) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(transcript.Title)

	doc.AddParagraph().AddRun().AddText("Session " + transcript.SessionID)

	for _, msg := range transcript.Messages {
		rolePar := doc.AddParagraph()
		rolePar.SetStyle("Heading2")
		rolePar.AddRun().AddText(roleTitle(msg.Role))

		// one run per line keeps the answer's line breaks
		bodyRun := doc.AddParagraph().AddRun()
		for i, line := range splitLines(msg.Content) {
			if i > 0 {
				bodyRun.AddBreak()
			}
			bodyRun.AddText(line)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
