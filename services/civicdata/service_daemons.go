package civicdata

import (
	"context"
	"log/slog"
	"time"
)

func (s Service) refreshDaemon(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(ctx, interval)
			_, err := s.RefreshAll(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "refresh all domains", "err", err)
			}
			cancel()
		}
	}
}
