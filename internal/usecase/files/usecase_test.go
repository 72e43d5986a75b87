package files

import (
	"context"
	"errors"
	"testing"

	"github.com/samsontands/RAG/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listerFunc func(ctx context.Context) (*entity.IndexedFiles, error)

func (f listerFunc) ListIndexedFiles(ctx context.Context) (*entity.IndexedFiles, error) {
	return f(ctx)
}

func status(s string) *string {
	return &s
}

func TestBuildTable(t *testing.T) {
	tests := []struct {
		name    string
		rows    []entity.IndexedFileRow
		columns []string
		want    [][]string
	}{
		{
			name: "all statuses missing drops the column",
			rows: []entity.IndexedFileRow{
				{Timestamp: "2024-01-01 10:00:00", Filename: "a.pdf"},
				{Timestamp: "2024-01-02 10:00:00", Filename: "b.pdf"},
			},
			columns: []string{"Last modified (UTC)", "Filename"},
			want: [][]string{
				{"2024-01-01 10:00:00", "a.pdf"},
				{"2024-01-02 10:00:00", "b.pdf"},
			},
		},
		{
			name: "one status keeps the column with blanks",
			rows: []entity.IndexedFileRow{
				{Timestamp: "2024-01-01 10:00:00", Filename: "a.pdf"},
				{Timestamp: "2024-01-02 10:00:00", Filename: "b.pdf", Status: status("INDEXED")},
			},
			columns: []string{"Last modified (UTC)", "Filename", "Status"},
			want: [][]string{
				{"2024-01-01 10:00:00", "a.pdf", ""},
				{"2024-01-02 10:00:00", "b.pdf", "INDEXED"},
			},
		},
		{
			name:    "empty listing",
			columns: []string{"Last modified (UTC)", "Filename"},
			want:    [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildTable(&entity.IndexedFiles{TimestampLabel: "Last modified (UTC)", Rows: tt.rows})
			assert.Equal(t, tt.columns, got.Columns)
			assert.Equal(t, tt.want, got.Rows)
		})
	}
}

func TestTable_FetchesEveryCall(t *testing.T) {
	calls := 0
	uc := NewUsecase(listerFunc(func(ctx context.Context) (*entity.IndexedFiles, error) {
		calls++
		return &entity.IndexedFiles{TimestampLabel: "ts"}, nil
	}), entity.WorkspaceInfo{})

	for i := 0; i < 3; i++ {
		_, err := uc.Table(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestTable_PropagatesFailure(t *testing.T) {
	cause := errors.New("backend down")
	uc := NewUsecase(listerFunc(func(ctx context.Context) (*entity.IndexedFiles, error) {
		return nil, errors.Join(entity.ErrIndexedFilesUnavailable, cause)
	}), entity.WorkspaceInfo{})

	_, err := uc.Table(context.Background())
	assert.ErrorIs(t, err, entity.ErrIndexedFilesUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestInfo(t *testing.T) {
	info := entity.WorkspaceInfo{UploadURL: "https://drive.example/folder", BackendHost: "host", BackendCaption: "caption"}
	uc := NewUsecase(nil, info)
	assert.Equal(t, info, uc.Info())
}
