package main

import (
	"fmt"
	"sort"
	"time"

	"go.temporal.io/api/enums/v1"
	historypb "go.temporal.io/api/history/v1"
	"go.temporal.io/sdk/converter"

	"github.com/leadforge/contact-cache/internal/workflows"
)

const enrichContactsActivity = "EnrichContacts"

// ChunkReport is one EnrichContacts activity of an import job
type ChunkReport struct {
	ChunkIndex int
	Contacts   int
	Attempt    int32
	Scheduled  time.Time
	Closed     *time.Time
	Summary    *workflows.ChunkSummary
	Failure    string
}

// Duration is the time from scheduling to the last close, zero while running
func (c *ChunkReport) Duration() time.Duration {
	if c.Closed == nil {
		return 0
	}
	return c.Closed.Sub(c.Scheduled)
}

// JobReport is the state of one EnrichImportJob execution
type JobReport struct {
	WorkflowID string
	RunID      string
	Status     enums.WorkflowExecutionStatus
	StartTime  time.Time
	CloseTime  *time.Time
	Chunks     []*ChunkReport
	Result     *workflows.ImportJobSummary
	Failure    string
}

// Contacts is the number of contacts across scheduled chunks
func (r *JobReport) Contacts() int {
	total := 0
	for _, c := range r.Chunks {
		total += c.Contacts
	}
	return total
}

// Retried counts chunks that needed more than one attempt
func (r *JobReport) Retried() int {
	n := 0
	for _, c := range r.Chunks {
		if c.Attempt > 1 {
			n++
		}
	}
	return n
}

// SlowestChunk returns the closed chunk that took longest, nil if none closed
func (r *JobReport) SlowestChunk() *ChunkReport {
	var slowest *ChunkReport
	for _, c := range r.Chunks {
		if c.Closed == nil {
			continue
		}
		if slowest == nil || c.Duration() > slowest.Duration() {
			slowest = c
		}
	}
	return slowest
}

// buildChunks folds the activity events of a workflow history into chunk reports
func buildChunks(events []*historypb.HistoryEvent) ([]*ChunkReport, *workflows.ImportJobSummary, string, error) {
	dc := converter.GetDefaultDataConverter()
	bySchedule := make(map[int64]*ChunkReport)
	var (
		chunks  []*ChunkReport
		result  *workflows.ImportJobSummary
		failure string
	)

	for _, event := range events {
		at := event.GetEventTime().AsTime()

		switch event.GetEventType() {
		case enums.EVENT_TYPE_ACTIVITY_TASK_SCHEDULED:
			attrs := event.GetActivityTaskScheduledEventAttributes()
			if attrs.GetActivityType().GetName() != enrichContactsActivity {
				continue
			}
			var input workflows.EnrichContactsInput
			if err := dc.FromPayloads(attrs.GetInput(), &input); err != nil {
				return nil, nil, "", fmt.Errorf("failed to decode input of event %d: %w", event.GetEventId(), err)
			}
			chunk := &ChunkReport{
				ChunkIndex: input.ChunkIndex,
				Contacts:   len(input.Contacts),
				Scheduled:  at,
			}
			bySchedule[event.GetEventId()] = chunk
			chunks = append(chunks, chunk)

		case enums.EVENT_TYPE_ACTIVITY_TASK_STARTED:
			attrs := event.GetActivityTaskStartedEventAttributes()
			if chunk, ok := bySchedule[attrs.GetScheduledEventId()]; ok {
				chunk.Attempt = attrs.GetAttempt()
			}

		case enums.EVENT_TYPE_ACTIVITY_TASK_COMPLETED:
			attrs := event.GetActivityTaskCompletedEventAttributes()
			chunk, ok := bySchedule[attrs.GetScheduledEventId()]
			if !ok {
				continue
			}
			var summary workflows.ChunkSummary
			if err := dc.FromPayloads(attrs.GetResult(), &summary); err != nil {
				return nil, nil, "", fmt.Errorf("failed to decode result of event %d: %w", event.GetEventId(), err)
			}
			chunk.Summary = &summary
			chunk.Closed = &at

		case enums.EVENT_TYPE_ACTIVITY_TASK_FAILED:
			attrs := event.GetActivityTaskFailedEventAttributes()
			if chunk, ok := bySchedule[attrs.GetScheduledEventId()]; ok {
				chunk.Failure = attrs.GetFailure().GetMessage()
				chunk.Closed = &at
			}

		case enums.EVENT_TYPE_ACTIVITY_TASK_TIMED_OUT:
			attrs := event.GetActivityTaskTimedOutEventAttributes()
			if chunk, ok := bySchedule[attrs.GetScheduledEventId()]; ok {
				chunk.Failure = "timed out"
				chunk.Closed = &at
			}

		case enums.EVENT_TYPE_WORKFLOW_EXECUTION_COMPLETED:
			var summary workflows.ImportJobSummary
			if err := dc.FromPayloads(event.GetWorkflowExecutionCompletedEventAttributes().GetResult(), &summary); err != nil {
				return nil, nil, "", fmt.Errorf("failed to decode workflow result: %w", err)
			}
			result = &summary

		case enums.EVENT_TYPE_WORKFLOW_EXECUTION_FAILED:
			failure = event.GetWorkflowExecutionFailedEventAttributes().GetFailure().GetMessage()
		}
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})

	return chunks, result, failure, nil
}
