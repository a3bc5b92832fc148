package drive

import (
	"bytes"
	"context"
	"sync"
)

// Area implements kv.Area with one <key>.json file per key in a Drive folder
type Area struct {
	files    *FileManager
	folders  *FolderManager
	folder   string
	parentMu sync.Mutex
	parentID string
}

// NewArea stores values in the named folder of the user's Drive, or in the
// hidden appDataFolder when folder is empty
func NewArea(client *Client, folder string) *Area {
	a := &Area{
		files:   NewFileManager(client),
		folders: NewFolderManager(client),
		folder:  folder,
	}
	if folder == "" {
		a.parentID = AppDataFolder
	}
	return a
}

func (a *Area) parent(ctx context.Context) (string, error) {
	a.parentMu.Lock()
	defer a.parentMu.Unlock()

	if a.parentID != "" {
		return a.parentID, nil
	}

	id, err := a.folders.GetOrCreate(ctx, a.folder, "")
	if err != nil {
		return "", err
	}
	a.parentID = id
	return id, nil
}

func (a *Area) Get(ctx context.Context, key string) ([]byte, error) {
	parentID, err := a.parent(ctx)
	if err != nil {
		return nil, err
	}

	file, err := a.files.Find(ctx, key+".json", parentID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil
	}

	return a.files.Download(ctx, file.Id)
}

func (a *Area) Put(ctx context.Context, key string, value []byte) error {
	parentID, err := a.parent(ctx)
	if err != nil {
		return err
	}

	existing, err := a.files.Find(ctx, key+".json", parentID)
	if err != nil {
		return err
	}

	if existing != nil {
		return a.files.Update(ctx, existing.Id, bytes.NewReader(value))
	}

	_, err = a.files.Create(ctx, key+".json", parentID, "application/json", bytes.NewReader(value))
	return err
}
