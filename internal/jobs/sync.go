package jobs

import (
	"context"

	"github.com/emrgen/peps/internal/ingest"
	"github.com/sirupsen/logrus"
)

// SyncTask runs the ingestion batch on a cron schedule.
type SyncTask struct {
	syncer *ingest.Syncer
	cron   string
}

func NewSyncTask(schedule string, syncer *ingest.Syncer) *SyncTask {
	return &SyncTask{
		syncer: syncer,
		cron:   schedule,
	}
}

func (s *SyncTask) ID() string {
	return "sync"
}

func (s *SyncTask) Name() string {
	return "sync"
}

func (s *SyncTask) Schedule() string {
	return s.cron
}

func (s *SyncTask) Run() {
	report, err := s.syncer.Run(context.Background())
	if err != nil {
		logrus.Errorf("scheduled sync failed: %v", err)
		return
	}

	if report.Failed > 0 {
		logrus.Warnf("scheduled sync %s finished with %d failures", report.RunID, report.Failed)
	}
}
