package drive

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
)

// AppDataFolder is the hidden per-application folder of a Drive account
const AppDataFolder = "appDataFolder"

const folderMimeType = "application/vnd.google-apps.folder"

// FolderManager handles folder operations in Google Drive
type FolderManager struct {
	client *Client
}

// NewFolderManager creates a new folder manager
func NewFolderManager(client *Client) *FolderManager {
	return &FolderManager{client: client}
}

// GetOrCreate returns the ID of a folder, creating it if it doesn't exist
func (fm *FolderManager) GetOrCreate(ctx context.Context, name string, parentID string) (string, error) {
	// If no parent is specified, use "root" for the user's main Drive folder
	if parentID == "" {
		parentID = "root"
	}

	query := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false and '%s' in parents",
		escapeQuery(name), folderMimeType, escapeQuery(parentID))

	fileList, err := fm.client.Service().Files.List().
		Q(query).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	// Return existing folder ID if found
	if len(fileList.Files) > 0 {
		return fileList.Files[0].Id, nil
	}

	fileMetadata := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}

	file, err := fm.client.Service().Files.Create(fileMetadata).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	return file.Id, nil
}
