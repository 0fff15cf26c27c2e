package services

import (
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/pkg/helpers"
)

// jobIndex looks jobs up by id for stitching children onto them
type jobIndex map[int64]*models.Job

func indexJobs(jobs []*models.Job) jobIndex {
	index := make(jobIndex, len(jobs))
	for _, job := range jobs {
		index[job.JobID] = job
	}
	return index
}

func (idx jobIndex) ids() []int64 {
	ids := make([]int64, 0, len(idx))
	for id := range idx {
		ids = append(ids, id)
	}
	return ids
}

// stitch flattens each child over its parent job; the child's columns win
// on a shared name. A child whose job is not indexed keeps only its own
// columns.
func stitch[T any](idx jobIndex, children []T, jobID func(T) int64) []helpers.Record {
	records := make([]helpers.Record, 0, len(children))
	for _, child := range children {
		var parent helpers.Record
		if job, ok := idx[jobID(child)]; ok {
			parent = helpers.ColumnMap(job)
		}
		records = append(records, helpers.Merge(parent, helpers.ColumnMap(child)))
	}
	return records
}
