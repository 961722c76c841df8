package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"photostudio/models"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds the asynq task for a scheduled booking reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Scheduler enqueues reminder tasks on the asynq queue.
type Scheduler struct {
	Client *asynq.Client
}

// ScheduleReminder enqueues a reminder to fire at the given time.
func (s *Scheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.Client.Enqueue(task, opts...)
	return err
}
