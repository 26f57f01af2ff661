package worker

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// BaseWorker - общая часть стрим-воркеров: идентичность консьюмера
// и идемпотентная остановка. Конкретные воркеры встраивают его
// и реализуют Start.
type BaseWorker struct {
	name          string
	consumerGroup string
	consumer      string
	logger        *zap.Logger

	stopOnce sync.Once
	stopChan chan struct{}
}

// NewBaseWorker создает новый BaseWorker. Имя консьюмера уникально
// в пределах процесса (hostname-pid), поэтому несколько инстансов
// воркера делят одну consumer group без конфликтов.
func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &BaseWorker{
		name:          name,
		consumerGroup: consumerGroup,
		consumer:      fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Name возвращает имя воркера
func (w *BaseWorker) Name() string {
	return w.name
}

// ConsumerGroup возвращает имя consumer group
func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

// Consumer возвращает имя консьюмера внутри группы
func (w *BaseWorker) Consumer() string {
	return w.consumer
}

// Logger возвращает логгер
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// StopChan возвращает канал остановки
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// Stop останавливает воркер. Повторные вызовы безопасны.
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker", zap.String("name", w.name))
		close(w.stopChan)
	})
	return nil
}
