package logic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/blues/launchpad/internal/logger"
	"github.com/blues/launchpad/internal/model"
	"github.com/blues/launchpad/internal/observability"
	"github.com/blues/launchpad/internal/store"
	"github.com/blues/launchpad/internal/validation"
	"github.com/blues/launchpad/internal/wallet"
	"go.uber.org/zap"
)

var (
	// ErrWalletRequired 未连接钱包
	ErrWalletRequired = errors.New("wallet not connected")
	// ErrInvalidStatus 无法识别的项目状态
	ErrInvalidStatus = errors.New("invalid project status")
)

// CreateProjectRequest 创建项目请求，表单字段之外的内容不参与表单校验
type CreateProjectRequest struct {
	Form              validation.ProjectForm
	Description       string
	ImageURL          string
	OwnerAddress      string
	TokenomicsDetails model.TokenomicsDetails
	SocialLinks       *model.SocialLinks
}

// ProjectStats 单个项目的统计信息
type ProjectStats struct {
	ProjectID            int64               `json:"projectId"`
	Status               model.ProjectStatus `json:"status"`
	FundingGoal          float64             `json:"fundingGoal"`
	CurrentFunds         float64             `json:"currentFunds"`
	Percentage           float64             `json:"percentage"`           // 封顶100
	OverfundedPercentage float64             `json:"overfundedPercentage"` // 超出目标的比例，未超出为0
	ContributorCount     int                 `json:"contributorCount"`
	ContributionCount    int                 `json:"contributionCount"`
	RemainingTime        string              `json:"remainingTime"`
}

// PlatformStats 平台整体统计
type PlatformStats struct {
	TotalProjects  int                         `json:"totalProjects"`
	ByStatus       map[model.ProjectStatus]int `json:"byStatus"`
	TotalRaised    float64                     `json:"totalRaised"`
	TotalGoal      float64                     `json:"totalGoal"`
	TotalInvestors int                         `json:"totalInvestors"`
	SuccessRate    float64                     `json:"successRate"` // 已结束项目中成功的比例（百分比）
}

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	store   store.Store
	metrics *observability.Metrics
	now     func() time.Time
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(s store.Store, metrics *observability.Metrics) *ProjectLogic {
	return &ProjectLogic{store: s, metrics: metrics, now: time.Now}
}

// WithClock 替换时间来源
func (p *ProjectLogic) WithClock(now func() time.Time) *ProjectLogic {
	p.now = now
	return p
}

// ValidateForm 校验创建表单与质押档位，不写入存储
func (p *ProjectLogic) ValidateForm(form validation.ProjectForm, tiers []model.StakingTier) validation.Result {
	res := validation.ValidateProjectFormAt(form, p.now()).
		Merge(validation.ValidateStakingTiers(tiers))
	recordFailures(p.metrics, "project", res)
	return res
}

// CreateProject 创建项目
func (p *ProjectLogic) CreateProject(ctx context.Context, req CreateProjectRequest) (model.Project, error) {
	owner, err := wallet.Parse(req.OwnerAddress)
	if err != nil {
		return model.Project{}, ErrWalletRequired
	}

	// 验证项目数据
	if res := p.ValidateForm(req.Form, req.TokenomicsDetails.StakingTiers); !res.Valid {
		return model.Project{}, res.Err()
	}

	// 表单已通过校验，日期必然可解析
	start, _ := validation.ParseDate(req.Form.StartDate)
	end, _ := validation.ParseDate(req.Form.EndDate)

	draft := model.ProjectDraft{
		ProjectName:       req.Form.ProjectName,
		TokenName:         req.Form.TokenName,
		TokenSymbol:       req.Form.TokenSymbol,
		Description:       req.Description,
		ImageURL:          req.ImageURL,
		FundingGoal:       req.Form.FundingGoal,
		StartDate:         start,
		EndDate:           end,
		OwnerAddress:      owner.Value,
		TokenomicsDetails: req.TokenomicsDetails,
		SocialLinks:       req.SocialLinks,
	}

	began := time.Now()
	project, err := p.store.CreateProject(ctx, draft)
	p.metrics.ObserveStore("create_project", began, err)
	if err != nil {
		return model.Project{}, fmt.Errorf("创建项目失败: %w", err)
	}

	p.metrics.ProjectsCreated.Inc()
	logger.With(
		zap.Int64("projectId", project.ID),
		zap.String("owner", wallet.Short(owner.Value)),
		zap.String("walletKind", string(owner.Kind)),
	).Info("project %s ($%s) created", project.ProjectName, project.TokenSymbol)

	return project, nil
}

// GetProjects 获取项目列表，status 为空时返回全部
func (p *ProjectLogic) GetProjects(ctx context.Context, status string) ([]model.Project, error) {
	began := time.Now()
	if status == "" {
		projects, err := p.store.ListProjects(ctx)
		p.metrics.ObserveStore("list_projects", began, err)
		if err != nil {
			return nil, fmt.Errorf("获取项目列表失败: %w", err)
		}
		return projects, nil
	}

	st, err := model.ParseProjectStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	projects, err := p.store.GetProjectsByStatus(ctx, st)
	p.metrics.ObserveStore("projects_by_status", began, err)
	if err != nil {
		return nil, fmt.Errorf("获取项目列表失败: %w", err)
	}
	return projects, nil
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(ctx context.Context, id int64) (model.Project, error) {
	began := time.Now()
	project, ok, err := p.store.GetProjectByID(ctx, id)
	p.metrics.ObserveStore("get_project", began, err)
	if err != nil {
		return model.Project{}, fmt.Errorf("获取项目详情失败: %w", err)
	}
	if !ok {
		return model.Project{}, fmt.Errorf("project %d: %w", id, store.ErrProjectNotFound)
	}
	return project, nil
}

// GetInvestors 获取项目的贡献记录
func (p *ProjectLogic) GetInvestors(ctx context.Context, id int64) ([]model.Investor, error) {
	if _, err := p.GetProject(ctx, id); err != nil {
		return nil, err
	}

	began := time.Now()
	investors, err := p.store.GetInvestorsByProject(ctx, id)
	p.metrics.ObserveStore("investors_by_project", began, err)
	if err != nil {
		return nil, fmt.Errorf("获取贡献记录失败: %w", err)
	}
	return investors, nil
}

// GetProjectStats 获取项目统计信息
func (p *ProjectLogic) GetProjectStats(ctx context.Context, id int64) (ProjectStats, error) {
	project, err := p.GetProject(ctx, id)
	if err != nil {
		return ProjectStats{}, err
	}
	investors, err := p.GetInvestors(ctx, id)
	if err != nil {
		return ProjectStats{}, err
	}

	contributors := make(map[string]struct{}, len(investors))
	for _, inv := range investors {
		contributors[inv.WalletAddress] = struct{}{}
	}

	percentage, overfunded := fundingProgress(project.CurrentFunds, project.FundingGoal)

	// 计算剩余时间
	remaining := time.Duration(0)
	if now := p.now(); project.Status == model.ProjectStatusActive && now.Before(project.EndDate) {
		remaining = project.EndDate.Sub(now).Truncate(time.Second)
	}

	return ProjectStats{
		ProjectID:            project.ID,
		Status:               project.Status,
		FundingGoal:          project.FundingGoal,
		CurrentFunds:         project.CurrentFunds,
		Percentage:           percentage,
		OverfundedPercentage: overfunded,
		ContributorCount:     len(contributors),
		ContributionCount:    len(investors),
		RemainingTime:        remaining.String(),
	}, nil
}

// GetPlatformStats 获取所有项目的统计信息
func (p *ProjectLogic) GetPlatformStats(ctx context.Context) (PlatformStats, error) {
	projects, err := p.GetProjects(ctx, "")
	if err != nil {
		return PlatformStats{}, err
	}

	stats := PlatformStats{
		TotalProjects: len(projects),
		ByStatus:      make(map[model.ProjectStatus]int, len(model.ProjectStatuses)),
	}
	for _, st := range model.ProjectStatuses {
		stats.ByStatus[st] = 0
	}

	investors := make(map[string]struct{})
	for _, project := range projects {
		stats.ByStatus[project.Status]++
		stats.TotalRaised += project.CurrentFunds
		stats.TotalGoal += project.FundingGoal

		began := time.Now()
		list, err := p.store.GetInvestorsByProject(ctx, project.ID)
		p.metrics.ObserveStore("investors_by_project", began, err)
		if err != nil {
			return PlatformStats{}, fmt.Errorf("获取贡献记录失败: %w", err)
		}
		for _, inv := range list {
			investors[inv.WalletAddress] = struct{}{}
		}
	}
	stats.TotalInvestors = len(investors)

	completed := stats.ByStatus[model.ProjectStatusCompleted]
	finished := completed + stats.ByStatus[model.ProjectStatusFailed] + stats.ByStatus[model.ProjectStatusRefunded]
	if finished > 0 {
		stats.SuccessRate = float64(completed) / float64(finished) * 100
	}

	return stats, nil
}

// fundingProgress 返回封顶100的完成百分比与超募百分比
func fundingProgress(current, goal float64) (percentage, overfunded float64) {
	if goal <= 0 {
		return 0, 0
	}
	ratio := current / goal * 100
	percentage = math.Min(ratio, 100)
	if current > goal {
		overfunded = (current - goal) / goal * 100
	}
	return percentage, overfunded
}

// recordFailures 按表单与错误类别统计校验失败
func recordFailures(m *observability.Metrics, form string, res validation.Result) {
	for _, e := range res.Errors {
		m.ValidationFailures.WithLabelValues(form, string(e.Code)).Inc()
	}
}
