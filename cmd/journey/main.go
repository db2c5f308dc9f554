package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"journey-engine/internal/config"
	"journey-engine/internal/devutil"
	"journey-engine/internal/gateway"
	"journey-engine/internal/journey"
	"journey-engine/internal/logging"
	"journey-engine/internal/userstore"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := openUserStore(ctx, cfg, logger)

	gw := gateway.New(cfg.APIBaseURL, cfg.APIToken, store)
	orch := journey.NewOrchestrator(gw, logger)

	if err := orch.Run(ctx); err != nil {
		logger.Fatal("initialization failed", zap.Error(err))
	}

	snap := orch.Snapshot()
	fmt.Println("profile:", devutil.Pick(snap.Profile, "firstName", "lastName", "email", "role"))
	fmt.Printf("enrolled=%v completion=%.1f%% notifications=%d courses=%d\n",
		snap.Enrolled, snap.CompletionPercentage, len(snap.Notifications), len(snap.Courses))

	buckets := journey.Partition(snap.Courses, time.Now())
	for _, b := range buckets.All() {
		fmt.Printf("\n== %s (%d)\n", b.State, b.Count)
		for _, c := range b.Courses {
			marker := ""
			if c.DeadlineExceeded {
				marker = " [deadline exceeded]"
			}
			fmt.Printf("%3d) %-12s %s%s\n", c.Order, c.ContentType, c.Title, marker)
		}
	}

	// peek into the first active lessons, handy when debugging a journey
	for i, c := range buckets.Active.Courses {
		if i >= 3 || c.LessonID == "" {
			break
		}
		contents, err := gw.FetchLessonContents(ctx, c.LessonID)
		if err != nil {
			logger.Warn("lesson contents", zap.String("lessonId", c.LessonID), zap.Error(err))
			continue
		}
		fmt.Printf("lesson %s: %d top-level fields\n", c.LessonID, len(contents))
	}
}

// openUserStore prefers Redis and falls back to the in-memory store when
// Redis is unreachable. A configured user id seeds an empty store.
func openUserStore(ctx context.Context, cfg config.Config, logger *zap.Logger) userstore.Store {
	rs := userstore.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rs.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, using in-memory user store", zap.Error(err))
		return userstore.NewMemory(cfg.UserID)
	}
	if cfg.UserID != "" {
		if err := rs.SetUserID(ctx, cfg.UserID); err != nil {
			logger.Warn("seeding user id failed", zap.Error(err))
		}
	}
	return rs
}
