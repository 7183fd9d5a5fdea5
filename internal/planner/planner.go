// Package planner computes which schedule jobs still have to be created.
package planner

import (
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/recurrence"
)

// Plan returns the creation requests for every (due date, building detail)
// pair that has no non-cancelled job yet. Output is ordered by run date and
// then by the order of targets. An empty target list is a no-op, not an error.
func Plan(schedule *entity.ScheduleEntity, dueDates []time.Time, targets []string, existing []entity.ScheduleJobEntity) []entity.ScheduleJobRequest {
	if schedule == nil || len(targets) == 0 || len(dueDates) == 0 {
		return nil
	}

	taken := make(map[entity.JobKey]struct{}, len(existing))
	for _, job := range existing {
		if job.Status == entity.JobCancel || job.ScheduleID == nil {
			continue
		}
		taken[entity.NewJobKey(*job.ScheduleID, job.BuildingDetailID, job.RunDate)] = struct{}{}
	}

	var out []entity.ScheduleJobRequest
	for _, due := range dueDates {
		runDate := recurrence.Day(due)
		for _, buildingDetailID := range targets {
			key := entity.NewJobKey(schedule.ID, buildingDetailID, runDate)
			if _, ok := taken[key]; ok {
				continue
			}
			// repeated inputs must not plan the same slot twice
			taken[key] = struct{}{}

			out = append(out, entity.ScheduleJobRequest{
				ScheduleID:       schedule.ID,
				BuildingDetailID: buildingDetailID,
				RunDate:          runDate,
				Status:           entity.JobPending,
				CreateTask:       schedule.AutoCreateTasks,
			})
		}
	}

	return out
}

// AsJobs turns requests into the job rows they would become, which lets a
// caller feed a previous plan back in as existing jobs.
func AsJobs(requests []entity.ScheduleJobRequest) []entity.ScheduleJobEntity {
	jobs := make([]entity.ScheduleJobEntity, 0, len(requests))
	for _, r := range requests {
		scheduleID := r.ScheduleID
		jobs = append(jobs, entity.ScheduleJobEntity{
			ScheduleID:       &scheduleID,
			BuildingDetailID: r.BuildingDetailID,
			RunDate:          r.RunDate,
			Status:           r.Status,
		})
	}
	return jobs
}
