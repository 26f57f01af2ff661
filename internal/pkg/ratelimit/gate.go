package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Gate выдерживает минимальный интервал между последовательными обращениями
// к общему внешнему endpoint'у. Один Gate разделяется всеми горутинами,
// которые ходят к этому endpoint'у, включая конкурентные запросы.
type Gate struct {
	limiter *rate.Limiter
}

// NewGate создаёт gate с минимальным интервалом между вызовами.
// Неположительный интервал отключает ожидание.
func NewGate(minInterval time.Duration) *Gate {
	if minInterval <= 0 {
		return &Gate{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Gate{limiter: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Wait блокирует до наступления следующего разрешённого слота
// или отмены контекста.
func (g *Gate) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}
