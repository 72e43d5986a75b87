package files

import (
	"context"

	"github.com/samsontands/RAG/internal/entity"
)

type FilesUsecase interface {
	Table(ctx context.Context) (*entity.FileTable, error)
	Info() entity.WorkspaceInfo
}
