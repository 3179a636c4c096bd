package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blues/launchpad/internal/logger"
	"github.com/blues/launchpad/internal/model"
	"github.com/blues/launchpad/internal/observability"
	"github.com/blues/launchpad/internal/store"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
)

// ProjectSource 状态任务读取与更新项目所需的存储能力
type ProjectSource interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	store.StatusUpdater
}

// ProjectStatusJob 项目状态更新任务。
// 存储本身从不修改状态，开始、结束的流转都由该任务触发。
type ProjectStatusJob struct {
	projects ProjectSource
	metrics  *observability.Metrics
	interval time.Duration
	pool     *ants.Pool
	now      func() time.Time
}

// NewProjectStatusJob 创建项目状态更新任务，workers 为并发更新的协程数
func NewProjectStatusJob(projects ProjectSource, metrics *observability.Metrics, interval time.Duration, workers int) (*ProjectStatusJob, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool of %d workers: %w", workers, err)
	}
	return &ProjectStatusJob{
		projects: projects,
		metrics:  metrics,
		interval: interval,
		pool:     pool,
		now:      time.Now,
	}, nil
}

// WithClock 替换时间来源
func (j *ProjectStatusJob) WithClock(now func() time.Time) *ProjectStatusJob {
	j.now = now
	return j
}

// GetName 获取任务名称
func (j *ProjectStatusJob) GetName() string {
	return "project_status_updater"
}

// GetSchedule 获取调度配置
func (j *ProjectStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Release 释放协程池
func (j *ProjectStatusJob) Release() {
	j.pool.Release()
}

// NextStatus 计算项目在 now 时刻应处的状态，无需变更时 ok 为 false。
// 进行中的项目即使超募也要等到结束时间才结算。
func NextStatus(p model.Project, now time.Time) (model.ProjectStatus, bool) {
	switch p.Status {
	case model.ProjectStatusPending:
		// 检查是否到了开始时间
		if !now.Before(p.StartDate) {
			return model.ProjectStatusActive, true
		}
	case model.ProjectStatusActive:
		// 检查是否到了结束时间
		if !now.Before(p.EndDate) {
			if p.CurrentFunds >= p.FundingGoal {
				return model.ProjectStatusCompleted, true
			}
			return model.ProjectStatusFailed, true
		}
	}
	return "", false
}

// Execute 执行任务，返回更新的项目数量
func (j *ProjectStatusJob) Execute(ctx context.Context) int {
	logger.Debug("Starting project status update task")

	projects, err := j.projects.ListProjects(ctx)
	if err != nil {
		logger.Error("Failed to fetch projects: %v", err)
		return 0
	}

	now := j.now()
	var (
		wg      sync.WaitGroup
		updated atomic.Int64
	)

	for _, project := range projects {
		next, ok := NextStatus(project, now)
		if !ok {
			continue
		}

		wg.Add(1)
		err := j.pool.Submit(func() {
			defer wg.Done()
			if err := j.projects.UpdateStatus(ctx, project.ID, next); err != nil {
				logger.Error("Failed to update project %d status: %v", project.ID, err)
				return
			}
			j.metrics.StatusTransitions.WithLabelValues(string(project.Status), string(next)).Inc()
			logger.Info("Updated project %d status from %s to %s", project.ID, project.Status, next)
			updated.Add(1)
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit task to pool: %v", err)
		}
	}

	wg.Wait()

	count := int(updated.Load())
	logger.Debug("Project status update completed. Updated %d projects", count)
	return count
}
