package task

import (
	"context"
	"fmt"
	"log"
	"strconv"

	domain "github.com/example/task-planner/domain/task"
)

func (s *Service) ListRecords(ctx context.Context, req ListRecordsRequest) (ListRecordsResponse, error) {
	st, err := s.authorizeSubtask(ctx, s.repo, req.SubtaskID, req.UserID)
	if err != nil {
		return ListRecordsResponse{}, err
	}
	records, err := s.repo.RecordsBySubtask(ctx, st.SubtaskID)
	if err != nil {
		return ListRecordsResponse{}, err
	}
	resp := ListRecordsResponse{Records: make([]RecordResponse, 0, len(records))}
	for i := range records {
		resp.Records = append(resp.Records, recordResponse(&records[i]))
	}
	return resp, nil
}

func (s *Service) GetRecord(ctx context.Context, req GetRecordRequest) (RecordResponse, error) {
	rec, _, err := s.authorizeRecord(ctx, s.repo, req.RecordWorkID, req.UserID)
	if err != nil {
		return RecordResponse{}, err
	}
	return recordResponse(rec), nil
}

// CreateRecord appends a work record for one day. A subtask holds at most
// one record per date; the occupancy check and the insert share a
// transaction, with the unique index as the backstop under concurrency.
func (s *Service) CreateRecord(ctx context.Context, req CreateRecordRequest) (RecordResponse, error) {
	if req.Date.IsZero() {
		return RecordResponse{}, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if err := validateWork(req.Work, req.WorkTime); err != nil {
		return RecordResponse{}, err
	}

	rec := &domain.RecordWork{
		SubtaskID: req.SubtaskID,
		Date:      req.Date,
		Work:      req.Work,
		WorkTime:  req.WorkTime,
	}
	var taskID uint
	err := s.repo.WithTx(ctx, func(tx *Repository) error {
		st, err := s.authorizeSubtask(ctx, tx, req.SubtaskID, req.UserID)
		if err != nil {
			return err
		}
		taskID = st.TaskID

		taken, err := tx.RecordExistsOnDate(ctx, st.SubtaskID, req.Date, 0)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrDuplicateDate
		}
		return tx.CreateRecord(ctx, rec)
	})
	if err != nil {
		return RecordResponse{}, err
	}
	s.invalidateTaskSummary(ctx, taskID)
	return recordResponse(rec), nil
}

// UpdateRecord patches a record. Moving it to another date re-runs the
// occupancy check against the target date, excluding the record itself.
func (s *Service) UpdateRecord(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error) {
	var rec *domain.RecordWork
	var taskID uint
	err := s.repo.WithTx(ctx, func(tx *Repository) error {
		var st *domain.Subtask
		var err error
		rec, st, err = s.authorizeRecord(ctx, tx, req.RecordWorkID, req.UserID)
		if err != nil {
			return err
		}
		taskID = st.TaskID

		if req.Date != nil && !req.Date.Equal(rec.Date) {
			taken, err := tx.RecordExistsOnDate(ctx, rec.SubtaskID, *req.Date, rec.RecordWorkID)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrDuplicateDate
			}
			rec.Date = *req.Date
		}
		if req.Work != nil {
			rec.Work = *req.Work
		}
		if req.WorkTime != nil {
			rec.WorkTime = *req.WorkTime
		}
		if err := validateWork(rec.Work, rec.WorkTime); err != nil {
			return err
		}
		return tx.SaveRecord(ctx, rec)
	})
	if err != nil {
		return RecordResponse{}, err
	}
	s.invalidateTaskSummary(ctx, taskID)
	return recordResponse(rec), nil
}

func (s *Service) DeleteRecord(ctx context.Context, req DeleteRecordRequest) (DeleteRecordResponse, error) {
	var taskID uint
	err := s.repo.WithTx(ctx, func(tx *Repository) error {
		rec, st, err := s.authorizeRecord(ctx, tx, req.RecordWorkID, req.UserID)
		if err != nil {
			return err
		}
		taskID = st.TaskID
		return tx.DeleteRecord(ctx, rec.RecordWorkID)
	})
	if err != nil {
		return DeleteRecordResponse{}, err
	}
	s.invalidateTaskSummary(ctx, taskID)
	return DeleteRecordResponse{RecordWorkID: req.RecordWorkID, Deleted: true}, nil
}

// TaskSummary aggregates work across all of a task's subtasks. Results
// are served cache-aside: concurrent misses for the same task collapse
// into one database query, and cache failures fall back to the database.
func (s *Service) TaskSummary(ctx context.Context, req TaskSummaryRequest) (TaskSummaryResponse, error) {
	if _, err := s.authorizeTask(ctx, s.repo, req.TaskID, req.UserID); err != nil {
		return TaskSummaryResponse{}, err
	}

	if s.summaries == nil {
		summary, err := s.repo.TaskSummary(ctx, req.TaskID)
		if err != nil {
			return TaskSummaryResponse{}, err
		}
		return taskSummaryResponse(req.TaskID, summary), nil
	}

	key := taskSummaryKey(req.TaskID)
	var cached TaskSummaryResponse
	hit, err := s.summaries.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("[task] Cache read failed for %s: %v", key, err)
	}
	if hit {
		return cached, nil
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		summary, err := s.repo.TaskSummary(ctx, req.TaskID)
		if err != nil {
			return nil, err
		}
		resp := taskSummaryResponse(req.TaskID, summary)
		if err := s.summaries.Set(ctx, key, resp); err != nil {
			log.Printf("[task] Cache write failed for %s: %v", key, err)
		}
		return resp, nil
	})
	if err != nil {
		return TaskSummaryResponse{}, err
	}
	return v.(TaskSummaryResponse), nil
}

func taskSummaryKey(taskID uint) string {
	return "task-summary:" + strconv.FormatUint(uint64(taskID), 10)
}

// invalidateTaskSummary drops the cached summary after a record mutation.
// Failures are logged and ignored; the entry expires on its own TTL.
func (s *Service) invalidateTaskSummary(ctx context.Context, taskID uint) {
	if s.summaries == nil || taskID == 0 {
		return
	}
	if err := s.summaries.Delete(ctx, taskSummaryKey(taskID)); err != nil {
		log.Printf("[task] Cache invalidation failed for task %d: %v", taskID, err)
	}
}

func taskSummaryResponse(taskID uint, s domain.WorkSummary) TaskSummaryResponse {
	return TaskSummaryResponse{
		TaskID:        taskID,
		TotalWork:     s.TotalWork,
		TotalWorkTime: s.TotalWorkTime,
		WorkDays:      s.WorkDays,
	}
}

func recordResponse(rec *domain.RecordWork) RecordResponse {
	return RecordResponse{
		RecordWorkID: rec.RecordWorkID,
		SubtaskID:    rec.SubtaskID,
		Date:         rec.Date,
		Work:         rec.Work,
		WorkTime:     rec.WorkTime,
	}
}
