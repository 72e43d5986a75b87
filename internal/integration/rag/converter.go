package rag

import (
	"strings"
	"time"

	"github.com/samsontands/RAG/internal/entity"
)

const (
	TimestampLabel  = "Last modified (UTC)"
	timestampLayout = "2006-01-02 15:04:05"
)

func toIndexedFiles(docs []entity.IndexedDocument) *entity.IndexedFiles {
	rows := make([]entity.IndexedFileRow, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, entity.IndexedFileRow{
			Timestamp: formatTimestamp(doc.ModifiedAt),
			Filename:  fileName(doc),
			Status:    doc.Status,
		})
	}

	return &entity.IndexedFiles{
		TimestampLabel: TimestampLabel,
		Rows:           rows,
	}
}

func formatTimestamp(unix int64) string {
	if unix <= 0 {
		return ""
	}
	return time.Unix(unix, 0).UTC().Format(timestampLayout)
}

func fileName(doc entity.IndexedDocument) string {
	if doc.Path != "" {
		if i := strings.LastIndex(doc.Path, "/"); i >= 0 && i < len(doc.Path)-1 {
			return doc.Path[i+1:]
		}
		if !strings.HasSuffix(doc.Path, "/") {
			return doc.Path
		}
	}
	return doc.Name
}
