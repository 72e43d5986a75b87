package files

import (
	"context"

	"github.com/samsontands/RAG/internal/entity"
)

type IndexedFilesLister interface {
	ListIndexedFiles(ctx context.Context) (*entity.IndexedFiles, error)
}
