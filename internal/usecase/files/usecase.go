package files

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/entity"
	"go.uber.org/zap"
)

const (
	filenameColumn = "Filename"
	statusColumn   = "Status"
)

// FilesUsecase exposes the indexed documents and the upload workspace
type FilesUsecase struct {
	lister IndexedFilesLister
	info   entity.WorkspaceInfo
}

func NewUsecase(lister IndexedFilesLister, info entity.WorkspaceInfo) *FilesUsecase {
	return &FilesUsecase{
		lister: lister,
		info:   info,
	}
}

// Table fetches a fresh listing on every call and renders it
func (uc *FilesUsecase) Table(ctx context.Context) (*entity.FileTable, error) {
	indexed, err := uc.lister.ListIndexedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list indexed files: %w", err)
	}

	table := BuildTable(indexed)
	ctxzap.Debug(ctx, "indexed files listed",
		zap.Int("rows", len(table.Rows)),
		zap.Bool("with_status", len(table.Columns) == 3),
	)

	return table, nil
}

// Info returns the upload location and the backend caption
func (uc *FilesUsecase) Info() entity.WorkspaceInfo {
	return uc.info
}

// BuildTable renders indexed files as rows of strings. The status column is
// kept only when at least one row has a status; missing statuses render blank.
func BuildTable(indexed *entity.IndexedFiles) *entity.FileTable {
	withStatus := false
	for _, row := range indexed.Rows {
		if row.Status != nil {
			withStatus = true
			break
		}
	}

	columns := []string{indexed.TimestampLabel, filenameColumn}
	if withStatus {
		columns = append(columns, statusColumn)
	}

	rows := make([][]string, 0, len(indexed.Rows))
	for _, row := range indexed.Rows {
		cells := []string{row.Timestamp, row.Filename}
		if withStatus {
			status := ""
			if row.Status != nil {
				status = *row.Status
			}
			cells = append(cells, status)
		}
		rows = append(rows, cells)
	}

	return &entity.FileTable{Columns: columns, Rows: rows}
}
