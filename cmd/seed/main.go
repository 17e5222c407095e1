// Command seed logs the dashboard's demo activities for one user through the
// same service and store the API uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fitlog/fitlog/backend/go-services/internal/activity/service"
	"github.com/fitlog/fitlog/backend/go-services/internal/config"
	"github.com/fitlog/fitlog/backend/go-services/internal/database"
	"github.com/fitlog/fitlog/backend/go-services/pkg/logger"
)

// demoActivities mirrors the dashboard's sample data, oldest first.
var demoActivities = []struct {
	Type    string
	Minutes int
	Notes   string
	DaysAgo int
}{
	{"run", 30, "Morning jog", 3},
	{"cycle", 60, "Road ride", 2},
	{"walk", 20, "Evening walk", 1},
	{"swim", 40, "Pool session", 0},
}

func main() {
	user := flag.String("user", "demo-user", "userId to log the demo activities for")
	weight := flag.Float64("weight", 0, "body weight in kg for the calorie estimate (0 = service default)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Server.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gw := database.Open(ctx, cfg)
	defer func() { _ = gw.Close(context.Background()) }()
	if !gw.Configured() {
		logger.Fatalf("no usable %s store; check the connection settings", gw.Backend)
	}

	if err := seed(ctx, gw.Store, *user, *weight, time.Now()); err != nil {
		logger.Errorf("seed failed: %v", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, store service.Store, user string, weight float64, now time.Time) error {
	for _, d := range demoActivities {
		at := now.Add(-time.Duration(d.DaysAgo) * 24 * time.Hour)
		svc := service.New(store, service.WithClock(func() time.Time { return at }))
		in := service.LogInput{UserID: user, Type: d.Type, DurationMinutes: d.Minutes, Notes: d.Notes}
		if weight > 0 {
			in.WeightKg = &weight
		}
		a, err := svc.Log(ctx, in)
		if err != nil {
			return fmt.Errorf("log %s: %w", d.Type, err)
		}
		fmt.Printf("%s\t%s\t%dm\t%d kcal\n", a.ID, a.Type, a.DurationMinutes, a.Calories)
	}
	return nil
}
