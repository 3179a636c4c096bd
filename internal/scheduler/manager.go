package scheduler

import (
	"context"
	"fmt"

	"github.com/blues/launchpad/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	statusJob *ProjectStatusJob
}

// NewManager 创建新的任务管理器
func NewManager() (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Manager{scheduler: s}, nil
}

// RegisterProjectStatusJob 注册项目状态更新任务，启动后立即执行一次
func (m *Manager) RegisterProjectStatusJob(ctx context.Context, job *ProjectStatusJob) error {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(func() { job.Execute(ctx) }),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", job.GetName(), err)
	}
	m.statusJob = job
	return nil
}

// Run 启动调度器并阻塞到 ctx 结束，随后停止所有任务
func (m *Manager) Run(ctx context.Context) error {
	m.scheduler.Start()
	logger.Info("Task manager started successfully")

	<-ctx.Done()
	return m.Stop()
}

// Stop 停止任务管理器
func (m *Manager) Stop() error {
	err := m.scheduler.Shutdown()
	if m.statusJob != nil {
		m.statusJob.Release()
	}
	if err != nil {
		return fmt.Errorf("failed to shutdown scheduler: %w", err)
	}
	logger.Info("Task manager stopped")
	return nil
}
