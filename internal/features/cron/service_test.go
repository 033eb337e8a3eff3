package cron_feature

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestInitializeSchedulerEmptyScheduleDisablesDigest(t *testing.T) {
	svc := &CronServiceImpl{Logger: zap.NewNop()}

	if err := svc.InitializeScheduler(context.Background()); err != nil {
		t.Fatalf("InitializeScheduler() with empty schedule error = %v", err)
	}
	if svc.scheduler != nil {
		t.Error("scheduler created despite empty schedule")
	}
	if err := svc.StopScheduler(); err != nil {
		t.Errorf("StopScheduler() error = %v", err)
	}
}

func TestInitializeSchedulerRejectsBadSpec(t *testing.T) {
	svc := &CronServiceImpl{Logger: zap.NewNop(), Schedule: "not a cron spec"}

	if err := svc.InitializeScheduler(context.Background()); err == nil {
		t.Fatal("InitializeScheduler() accepted a malformed schedule")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	svc := &CronServiceImpl{Logger: zap.NewNop(), Schedule: "0 8 * * *"}

	if err := svc.InitializeScheduler(context.Background()); err != nil {
		t.Fatalf("InitializeScheduler() error = %v", err)
	}
	if svc.scheduler == nil {
		t.Fatal("scheduler not created for a valid schedule")
	}
	if err := svc.StopScheduler(); err != nil {
		t.Errorf("StopScheduler() error = %v", err)
	}
}
