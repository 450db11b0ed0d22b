package service

import (
	"github.com/MKhiriev/cue-sync/internal/adapter"
	"github.com/MKhiriev/cue-sync/internal/logger"
	"github.com/MKhiriev/cue-sync/internal/notify"
	"github.com/MKhiriev/cue-sync/internal/store"
	"github.com/MKhiriev/cue-sync/internal/utils"
	"github.com/MKhiriev/cue-sync/models"
)

// ClientServices groups the services the local API and the entry point use.
type ClientServices struct {
	Coordinators  map[models.DocumentKind]SyncCoordinator
	RecordService RecordService
	SyncService   SyncService
	SyncJob       ClientSyncJob
	AppInfo       AppInfoService
	StatusBoard   *notify.StatusBoard
}

// NewClientServices builds one coordinator per document store and wires the
// record, sync and info services on top of them. Notifications go to the
// log and to the status board reported by the sync service.
func NewClientServices(storages *store.ClientStorages, remote adapter.RemoteObjectClient, opts CoordinatorOptions, info models.AppBuildInfo, logger *logger.Logger) *ClientServices {
	board := notify.NewStatusBoard()
	notifier := notify.Multi{notify.NewLogNotifier(logger), board}

	coordinators := make(map[models.DocumentKind]SyncCoordinator, len(storages.Documents))
	for kind, docs := range storages.Documents {
		coordinators[kind] = NewCoordinator(docs, remote, notifier, opts, logger)
	}

	syncSvc := NewSyncService(coordinators, remote, storages.Credentials, board, logger)

	return &ClientServices{
		Coordinators:  coordinators,
		RecordService: NewRecordService(coordinators, utils.NewUUIDGenerator(), logger),
		SyncService:   syncSvc,
		SyncJob:       NewClientSyncJob(syncSvc),
		AppInfo:       NewAppInfoService(info, logger),
		StatusBoard:   board,
	}
}
