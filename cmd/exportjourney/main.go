package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"journey-engine/internal/concurrency"
	"journey-engine/internal/config"
	"journey-engine/internal/domain"
	"journey-engine/internal/export"
	"journey-engine/internal/gateway"
	"journey-engine/internal/journey"
	"journey-engine/internal/logging"
	"journey-engine/internal/sftpclient"
	"journey-engine/internal/userstore"
)

func main() {
	out := flag.String("o", "journey_report.csv", "output CSV path")
	upload := flag.Bool("upload", false, "upload the compressed report over SFTP")
	flag.Parse()

	cfg := config.Load()

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store := userstore.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	var users userstore.Store = store
	if err := store.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, using in-memory user store", zap.Error(err))
		users = userstore.NewMemory(cfg.UserID)
	}

	gw := gateway.New(cfg.APIBaseURL, cfg.APIToken, users)
	orch := journey.NewOrchestrator(gw, logger)
	if err := orch.Run(ctx); err != nil {
		logger.Fatal("initialization failed", zap.Error(err))
	}

	snap := orch.Snapshot()
	buckets := journey.Partition(snap.Courses, time.Now())

	var rows []export.Row
	for _, b := range buckets.All() {
		for _, c := range b.Courses {
			rows = append(rows, export.Row{Course: c, State: b.State})
		}
	}

	rows, errs := enrich(ctx, gw, rows)
	for _, e := range errs {
		logger.Warn("report enrichment", zap.Error(e))
	}

	f, err := os.Create(*out)
	if err != nil {
		logger.Fatal("create output", zap.Error(err))
	}
	if err := export.WriteJourneyCSV(f, rows); err != nil {
		f.Close()
		logger.Fatal("write csv", zap.Error(err))
	}
	f.Close()
	fmt.Printf("OK: wrote %d rows to %s\n", len(rows), *out)

	brPath, err := export.CompressFile(*out)
	if err != nil {
		logger.Fatal("compress", zap.Error(err))
	}
	fmt.Println("OK: compressed to", brPath)

	if *upload {
		err := sftpclient.UploadFile(ctx, sftpclient.Config{
			Host:                  cfg.SFTPHost,
			Port:                  cfg.SFTPPort,
			User:                  cfg.SFTPUser,
			Pass:                  cfg.SFTPPass,
			RemoteDir:             cfg.SFTPDir,
			InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
		}, brPath, filepath.Base(brPath))
		if err != nil {
			logger.Fatal("upload", zap.Error(err))
		}
		fmt.Println("OK: uploaded", filepath.Base(brPath))
	}
}

// enrich fills in the lesson-level columns for assessment-like rows, best
// effort and in parallel. A failed lookup leaves the column empty.
func enrich(ctx context.Context, gw gateway.Gateway, rows []export.Row) ([]export.Row, []error) {
	return concurrency.ProcessParallel(ctx, rows, concurrency.DefaultOptions(),
		func(ctx context.Context, _ int, r export.Row) (export.Row, error) {
			c := r.Course
			if !c.ContentType.AssessmentLike() || c.LessonID == "" {
				return r, nil
			}

			sum, err := gw.FetchAttemptSummary(ctx, c.LessonID)
			if err != nil {
				return r, fmt.Errorf("attempt summary %s: %w", c.LessonID, err)
			}
			r.AttemptState = sum.State

			if r.State == domain.ClassCompleted {
				report, err := gw.FetchQuizReport(ctx, c.LessonID, 1)
				if err != nil {
					return r, fmt.Errorf("quiz report %s: %w", c.LessonID, err)
				}
				if v, ok := report["score"]; ok {
					r.QuizScore = fmt.Sprint(v)
				}
			}
			return r, nil
		})
}
