// Command sweep reconciles the user/board ownership references.
//
// Board creation and deletion are two single-document writes, not a
// transaction, so a crash between them can leave a board missing from its
// owner's reference set or a reference pointing at a deleted board. Run this
// tool (cron or by hand) to re-link the former and prune the latter. It only
// issues idempotent set inserts and pulls, so it is safe alongside live
// traffic.
package main

import (
	"context"
	"time"

	"github.com/planvista/visionboard-api/internal/core/service"
	mongodb "github.com/planvista/visionboard-api/internal/infrastructure/db/mongo"
	"github.com/planvista/visionboard-api/internal/pkg/config"
	"github.com/planvista/visionboard-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancelDisconnect := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelDisconnect()
		_ = client.Disconnect(disconnectCtx)
	}()

	users := mongodb.NewUserRepository(db)
	boards := mongodb.NewBoardRepository(db)
	vendors := mongodb.NewVendorRepository(db)

	boardService := service.NewBoardService(users, boards, vendors, log)

	report, err := boardService.RepairOwnership(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("ownership repair failed")
	}

	log.Info().
		Int("relinked", report.Relinked).
		Int("pruned", report.Pruned).
		Msg("ownership repair complete")
}
