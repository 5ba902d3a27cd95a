package services

import (
	"github.com/sjperalta/billing-api/internal/jobs"
)

type JobService struct {
	worker *jobs.Worker
}

func NewJobService(worker *jobs.Worker) *JobService {
	return &JobService{
		worker: worker,
	}
}

// GetStatus reports the background worker statistics.
func (s *JobService) GetStatus() jobs.WorkerStats {
	return s.worker.GetStats()
}
