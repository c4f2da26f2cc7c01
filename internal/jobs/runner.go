package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

type Job interface {
	Run()
}

// CronJob is a job with its own schedule expression.
type CronJob interface {
	Schedule() string
	Job
}

// TaskExecutor runs cron jobs in the background. A job still running
// when its schedule fires again is skipped for that tick, so slow runs
// never overlap.
type TaskExecutor struct {
	cron    *cron.Cron
	jobs    []CronJob
	running mapset.Set[CronJob]
	mu      sync.Mutex
}

func NewTaskExecutor(jobs []CronJob) *TaskExecutor {
	return &TaskExecutor{
		cron:    cron.New(),
		jobs:    jobs,
		running: mapset.NewSet[CronJob](),
	}
}

// Run schedules the jobs and starts the cron in its own goroutine.
func (t *TaskExecutor) Run() {
	for _, job := range t.jobs {
		err := t.cron.AddFunc(job.Schedule(), func() {
			t.mu.Lock()
			if t.running.Contains(job) {
				t.mu.Unlock()
				logrus.Warn("task is already running")
				return
			}
			t.running.Add(job)
			t.mu.Unlock()

			defer func() {
				t.mu.Lock()
				defer t.mu.Unlock()
				t.running.Remove(job)
			}()

			job.Run()
		})

		if err != nil {
			logrus.Errorf("failed to add task to cron: %v", err)
			panic(err)
		}
	}

	t.cron.Start()
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all tasks")
	t.cron.Stop()
}
