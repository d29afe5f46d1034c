package opener

import (
	"context"

	"go.uber.org/zap"

	"github.com/carlhannes/hannes-os/internal/domain/registry"
	"github.com/carlhannes/hannes-os/internal/domain/vfs"
	"github.com/carlhannes/hannes-os/internal/domain/window"
	"github.com/carlhannes/hannes-os/internal/infrastructure/logging"
	"github.com/carlhannes/hannes-os/internal/shared/types"
)

// maxLinkDepth bounds link-to-link chains so cyclic links fail instead
// of looping
const maxLinkDepth = 8

// Opener launches the right application for an entity
type Opener struct {
	fs       *vfs.Service
	registry *registry.Registry
	windows  *window.Manager
	log      *logging.Logger
}

// New creates an opener over its three collaborators
func New(fs *vfs.Service, reg *registry.Registry, windows *window.Manager, log *logging.Logger) *Opener {
	if log == nil {
		log = logging.NewNop()
	}
	return &Opener{
		fs:       fs,
		registry: reg,
		windows:  windows,
		log:      log,
	}
}

// OpenEntity opens an entity by id, returning the new window id
func (o *Opener) OpenEntity(ctx context.Context, entityID string) (string, error) {
	entity, err := o.fs.GetEntity(ctx, entityID)
	if err != nil {
		return "", err
	}
	return o.open(ctx, entity, 0)
}

// OpenEntityByPath opens an entity by absolute path
func (o *Opener) OpenEntityByPath(ctx context.Context, path string) (string, error) {
	entity, err := o.fs.GetEntityByPath(ctx, path)
	if err != nil {
		return "", err
	}
	return o.open(ctx, entity, 0)
}

// OpenApp launches an application fresh, with optional prop overrides
func (o *Opener) OpenApp(appID string, overrides map[string]interface{}) (string, error) {
	app, ok := o.registry.GetAppByID(appID)
	if !ok {
		return "", &vfs.Error{Code: vfs.CodeInvalidLinkTarget, Message: "application " + appID + " is not installed"}
	}
	return o.launch(app, overrides), nil
}

func (o *Opener) open(ctx context.Context, entity *types.Entity, depth int) (string, error) {
	switch entity.Type {
	case types.EntityDirectory:
		return o.openDirectory(ctx, entity)

	case types.EntityFile:
		return o.openFile(ctx, entity)

	case types.EntityLink:
		return o.openLink(ctx, entity, depth)

	case types.EntityApplication:
		// Legacy records carry the app id directly
		return o.OpenApp(entity.AppID, nil)

	default:
		return "", &vfs.Error{Code: vfs.CodeInvalidLinkTarget, Message: "cannot open entity of type " + string(entity.Type)}
	}
}

func (o *Opener) openDirectory(ctx context.Context, dir *types.Entity) (string, error) {
	app, ok := o.registry.GetAppByID(registry.AppFinder)
	if !ok {
		return "", &vfs.Error{Code: vfs.CodeInvalidLinkTarget, Message: "file manager is not installed"}
	}

	path, err := o.fs.GetPath(ctx, dir.ID)
	if err != nil {
		return "", err
	}

	title := dir.DisplayName()
	if dir.IsRoot() {
		title = app.Name
	}

	spec := o.windowSpec(app, title, map[string]interface{}{
		"directoryId": dir.ID,
		"path":        path,
	})
	spec.Subtitle = path
	return o.windows.OpenWindow(spec), nil
}

func (o *Opener) openFile(ctx context.Context, file *types.Entity) (string, error) {
	handlers := o.registry.GetAppsForExtension(file.Name)
	if len(handlers) == 0 {
		return "", &vfs.Error{Code: vfs.CodeInvalidLinkTarget, Message: "no application can open " + file.Name}
	}
	app := handlers[0]

	path, err := o.fs.GetPath(ctx, file.ID)
	if err != nil {
		return "", err
	}

	return o.windows.OpenWindow(o.windowSpec(app, file.Name, map[string]interface{}{
		"entityId": file.ID,
		"path":     path,
		"content":  file.Content,
		"mimeType": file.MimeType,
	})), nil
}

func (o *Opener) openLink(ctx context.Context, link *types.Entity, depth int) (string, error) {
	if depth >= maxLinkDepth {
		return "", &vfs.Error{Code: vfs.CodeInvalidLinkTarget, Message: "link chain too deep at " + link.Name}
	}

	switch link.TargetType {
	case types.LinkTargetApplication:
		return o.OpenApp(link.Target, nil)

	case types.LinkTargetURL:
		app, ok := o.registry.GetAppByID(registry.AppBrowser)
		if !ok {
			return "", &vfs.Error{Code: vfs.CodeInvalidLinkTarget, Message: "browser is not installed"}
		}
		return o.launch(app, map[string]interface{}{"initialUrl": link.Target}), nil

	case types.LinkTargetFile, types.LinkTargetDirectory:
		target, err := o.fs.GetEntity(ctx, link.Target)
		if err != nil {
			if vfs.CodeOf(err) == vfs.CodeEntityNotFound {
				o.log.Warn("Dangling link", zap.String("link", link.Name), zap.String("target", link.Target))
				return "", &vfs.Error{Code: vfs.CodeInvalidLinkTarget, Message: link.DisplayName() + " points at a missing item"}
			}
			return "", err
		}
		return o.open(ctx, target, depth+1)

	default:
		return "", &vfs.Error{Code: vfs.CodeInvalidLinkTarget, Message: "unknown link target type " + string(link.TargetType)}
	}
}

// launch opens a window for an app, merging default props with overrides
func (o *Opener) launch(app types.AppInfo, overrides map[string]interface{}) string {
	props := make(map[string]interface{}, len(app.DefaultProps)+len(overrides))
	for k, v := range app.DefaultProps {
		props[k] = v
	}
	for k, v := range overrides {
		props[k] = v
	}
	return o.windows.OpenWindow(o.windowSpec(app, app.Name, props))
}

func (o *Opener) windowSpec(app types.AppInfo, title string, props map[string]interface{}) types.WindowSpec {
	return types.WindowSpec{
		Title:     title,
		Icon:      app.Icon,
		Component: app.Component,
		Position: types.Position{
			Width:  app.DefaultSize.Width,
			Height: app.DefaultSize.Height,
		},
		Props: props,
	}
}
