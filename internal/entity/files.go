package entity

// IndexedDocument is one entry of the retrieval backend's document listing
type IndexedDocument struct {
	Path       string  `json:"path"`
	Name       string  `json:"name"`
	ModifiedAt int64   `json:"modified_at"`
	Status     *string `json:"status,omitempty"`
}

type IndexedFileRow struct {
	Timestamp string  `json:"timestamp"`
	Filename  string  `json:"filename"`
	Status    *string `json:"status,omitempty"`
}

// IndexedFiles is a snapshot of the indexed source files
type IndexedFiles struct {
	TimestampLabel string           `json:"timestamp_label"`
	Rows           []IndexedFileRow `json:"rows"`
}

// FileTable is the render-ready form of IndexedFiles
type FileTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// WorkspaceInfo describes where documents are uploaded and which backend answers
type WorkspaceInfo struct {
	UploadURL      string `json:"upload_url"`
	BackendHost    string `json:"backend_host"`
	BackendCaption string `json:"backend_caption"`
}
