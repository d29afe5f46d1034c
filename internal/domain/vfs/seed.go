package vfs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/carlhannes/hannes-os/internal/shared/id"
	"github.com/carlhannes/hannes-os/internal/shared/paths"
	"github.com/carlhannes/hannes-os/internal/shared/types"
)

const welcomeText = `Welcome to your desktop!

Double-click an icon to open it. Files you create are saved locally
and survive restarts.
`

const gettingStartedText = `Getting started

- Open the file manager from the dock to browse your files
- Right-click the desktop to create files and folders
- Drag windows by their title bar; double-click to maximize
`

// Desktop icon grid geometry for seeded shortcuts
const (
	desktopGridX       = 24
	desktopGridY       = 24
	desktopGridSpacing = 100
)

// seedDefaultTree synthesizes the default directory layout, sample files
// and one application shortcut per registered app in both /Applications
// and the user's Desktop. Called with s.mu held, before ready is set.
func (s *Service) seedDefaultTree(ctx context.Context) (string, *Error) {
	root := types.NewDirectory(id.NewDirID().String(), "", nil)
	if err := s.put(ctx, root); err != nil {
		return "", err
	}

	users, err := s.seedDir(ctx, paths.Base(paths.Users), root)
	if err != nil {
		return "", err
	}
	user, err := s.seedDir(ctx, paths.Base(paths.UserHome), users)
	if err != nil {
		return "", err
	}

	var desktop, documents *types.Entity
	for _, folder := range paths.UserFolders() {
		dir, err := s.seedDir(ctx, paths.Base(folder), user)
		if err != nil {
			return "", err
		}
		switch folder {
		case paths.Desktop:
			desktop = dir
		case paths.Documents:
			documents = dir
		}
	}

	applications, err := s.seedDir(ctx, paths.Base(paths.Applications), root)
	if err != nil {
		return "", err
	}
	if _, err := s.seedDir(ctx, paths.Base(paths.System), root); err != nil {
		return "", err
	}

	if err := s.seedFile(ctx, "Welcome.txt", documents, welcomeText, "text/plain"); err != nil {
		return "", err
	}
	if err := s.seedFile(ctx, "Getting Started.txt", documents, gettingStartedText, "text/plain"); err != nil {
		return "", err
	}

	if s.catalog != nil {
		for i, app := range s.catalog.ListApps() {
			appLink := types.NewLink(id.NewLinkID().String(), app.Name, &applications.ID, types.LinkTargetApplication, app.ID)
			if err := s.put(ctx, appLink); err != nil {
				return "", err
			}

			deskLink := types.NewLink(id.NewLinkID().String(), app.Name, &desktop.ID, types.LinkTargetApplication, app.ID)
			deskLink.Metadata["desktopX"] = desktopGridX
			deskLink.Metadata["desktopY"] = desktopGridY + i*desktopGridSpacing
			if err := s.put(ctx, deskLink); err != nil {
				return "", err
			}
		}
	}

	state := &types.State{RootID: root.ID, SavedAt: time.Now()}
	if err := s.store.SaveState(ctx, state); err != nil {
		return "", storageFault("save state", err)
	}

	s.log.Info("Seeded default file system",
		zap.String("root_id", root.ID),
	)
	return root.ID, nil
}

func (s *Service) seedDir(ctx context.Context, name string, parent *types.Entity) (*types.Entity, *Error) {
	dir := types.NewDirectory(id.NewDirID().String(), name, &parent.ID)
	if err := s.put(ctx, dir); err != nil {
		return nil, err
	}
	return dir, nil
}

func (s *Service) seedFile(ctx context.Context, name string, parent *types.Entity, content, mimeType string) *Error {
	file := types.NewFile(id.NewFileID().String(), name, &parent.ID, content, mimeType)
	return s.put(ctx, file)
}

func (s *Service) put(ctx context.Context, entity *types.Entity) *Error {
	if err := s.store.Put(ctx, entity); err != nil {
		return storageFault("seed entity", err)
	}
	return nil
}
