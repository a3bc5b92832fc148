package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
)

// FileManager handles generic file operations in Google Drive
type FileManager struct {
	client *Client
}

// NewFileManager creates a new file manager
func NewFileManager(client *Client) *FileManager {
	return &FileManager{client: client}
}

// escapeQuery escapes a value for use inside a quoted Drive query string
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// Find searches for a file by name in a specific folder
func (fm *FileManager) Find(ctx context.Context, filename, parentID string) (*drive.File, error) {
	query := fmt.Sprintf("name='%s' and '%s' in parents and trashed=false", escapeQuery(filename), escapeQuery(parentID))

	call := fm.client.Service().Files.List().
		Q(query).
		Fields("files(id, name, modifiedTime)")
	if parentID == AppDataFolder {
		call = call.Spaces(AppDataFolder)
	}

	fileList, err := call.Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	if len(fileList.Files) == 0 {
		return nil, nil
	}

	return fileList.Files[0], nil
}

// Download downloads the content of a file
func (fm *FileManager) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := fm.client.Service().Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// Create creates a new file with the given content
func (fm *FileManager) Create(ctx context.Context, name, parentID, mimeType string, content io.Reader) (*drive.File, error) {
	fileMetadata := &drive.File{
		Name:     name,
		Parents:  []string{parentID},
		MimeType: mimeType,
	}

	return fm.client.Service().Files.Create(fileMetadata).
		Media(content).
		Fields("id, name").
		Context(ctx).
		Do()
}

// Update replaces an existing file's content
func (fm *FileManager) Update(ctx context.Context, fileID string, content io.Reader) error {
	_, err := fm.client.Service().Files.Update(fileID, &drive.File{}).
		Media(content).
		Context(ctx).
		Do()
	return err
}
