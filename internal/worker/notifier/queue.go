package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

// Результаты уведомлений для метрик
const (
	ResultSent      = "sent"
	ResultFailed    = "failed"
	ResultDropped   = "dropped"
	ResultAbandoned = "abandoned"
)

// Task уведомление о переходе статуса
type Task struct {
	ID        string
	BookingID int64
	Status    domain.BookingStatus
	Attempts  int
}

// Config параметры очереди
type Config struct {
	Workers     int
	BufferSize  int
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	SendTimeout time.Duration
}

// Queue очередь уведомлений о переходах статусов с повторами.
// Постановка в очередь не блокирует; при переполнении задача отбрасывается.
type Queue struct {
	cfg      Config
	sender   Sender
	observer Observer
	log      Logger
	backoff  *Backoff
	tasks    chan Task

	// wait ждёт d или остановки очереди, false если очередь остановлена
	wait func(d time.Duration) bool

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New создает очередь; observer может быть nil
func New(cfg Config, sender Sender, observer Observer, log Logger) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 100
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}

	q := &Queue{
		cfg:      cfg,
		sender:   sender,
		observer: observer,
		log:      log,
		backoff:  NewBackoff(cfg.BaseDelay, cfg.MaxDelay),
		tasks:    make(chan Task, cfg.BufferSize),
		stopCh:   make(chan struct{}),
	}
	q.wait = q.sleep
	return q
}

// Start запускает воркеры
func (q *Queue) Start() {
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.log.Info("Transition notifier started: workers=%d, buffer=%d, max_attempts=%d",
		q.cfg.Workers, q.cfg.BufferSize, q.cfg.MaxAttempts)
}

// Enqueue ставит уведомление в очередь без ожидания
func (q *Queue) Enqueue(bookingID int64, status domain.BookingStatus) (string, bool) {
	task := Task{ID: uuid.NewString(), BookingID: bookingID, Status: status}

	select {
	case <-q.stopCh:
		q.observe(ResultDropped)
		q.log.Warn("Transition notifier stopped, dropping task=%s booking_id=%d status=%s", task.ID, bookingID, status)
		return task.ID, false
	default:
	}

	select {
	case q.tasks <- task:
		q.setDepth()
		return task.ID, true
	default:
		q.observe(ResultDropped)
		q.log.Error("Transition notifier queue full, dropping task=%s booking_id=%d status=%s", task.ID, bookingID, status)
		return task.ID, false
	}
}

// Stop останавливает воркеры и ждёт их завершения или отмены ctx.
// Незапущенные повторы прерываются, задачи в буфере не доставляются.
func (q *Queue) Stop(ctx context.Context) error {
	q.stopOnce.Do(func() { close(q.stopCh) })

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if n := len(q.tasks); n > 0 {
			q.log.Warn("Transition notifier stopped with %d undelivered tasks", n)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()

	for {
		select {
		case <-q.stopCh:
			return
		case task := <-q.tasks:
			q.setDepth()
			q.process(task)
		}
	}
}

func (q *Queue) process(task Task) {
	for {
		task.Attempts++

		ctx, cancel := context.WithTimeout(context.Background(), q.cfg.SendTimeout)
		err := q.sender.NotifyTransition(ctx, task.BookingID, task.Status)
		cancel()

		if err == nil {
			q.observe(ResultSent)
			q.log.Info("Transition notification sent: task=%s booking_id=%d status=%s attempts=%d",
				task.ID, task.BookingID, task.Status, task.Attempts)
			return
		}

		if task.Attempts >= q.cfg.MaxAttempts {
			q.observe(ResultFailed)
			q.log.Error("Transition notification failed permanently: task=%s booking_id=%d status=%s attempts=%d: %v",
				task.ID, task.BookingID, task.Status, task.Attempts, err)
			return
		}

		delay := q.backoff.Delay(task.Attempts)
		q.log.Warn("Transition notification failed, retrying in %s: task=%s booking_id=%d attempt=%d: %v",
			delay, task.ID, task.BookingID, task.Attempts, err)

		if !q.wait(delay) {
			q.observe(ResultAbandoned)
			q.log.Warn("Transition notifier stopping, abandoning task=%s booking_id=%d", task.ID, task.BookingID)
			return
		}
	}
}

func (q *Queue) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-q.stopCh:
		return false
	}
}

func (q *Queue) observe(result string) {
	if q.observer != nil {
		q.observer.ObserveNotification(result)
	}
}

func (q *Queue) setDepth() {
	if q.observer != nil {
		q.observer.SetNotifierQueueDepth(len(q.tasks))
	}
}
