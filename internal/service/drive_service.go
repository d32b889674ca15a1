package service

import (
	"context"
	"fmt"

	"github.com/fadilmartias/recruiting-sync/internal/config"
	"github.com/fadilmartias/recruiting-sync/internal/model"
	"github.com/fadilmartias/recruiting-sync/internal/syncerr"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService resolves uploaded file ids against Google Drive. It satisfies
// mapping.FileStorage.
type DriveService struct {
	service *drive.Service
}

func NewDriveService(ctx context.Context) (*DriveService, error) {
	googleConfig := config.LoadGoogleConfig()

	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(googleConfig.ServiceAccountFile),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &DriveService{service: svc}, nil
}

func (s *DriveService) FileMeta(ctx context.Context, fileID string) (model.FileMeta, error) {
	f, err := s.service.Files.Get(fileID).
		Fields("name", "webContentLink").
		Context(ctx).
		Do()
	if err != nil {
		return model.FileMeta{}, syncerr.Wrap(syncerr.ErrSourceUnavailable, "get file "+fileID, err)
	}
	return model.FileMeta{Name: f.Name, DownloadURL: f.WebContentLink}, nil
}
