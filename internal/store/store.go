// Package store 项目与贡献记录的存储。
//
// Store 定义了后端需要满足的全部契约：内存实现用定时器模拟网络与交易确认延迟，
// GormStore 是对接真实数据库的实现，两者可以互相替换。
package store

import (
	"context"
	"errors"
	"time"

	"github.com/blues/launchpad/internal/model"
)

var (
	// ErrProjectNotFound 项目不存在
	ErrProjectNotFound = errors.New("project not found")
	// ErrProjectNotActive 项目状态不满足写入条件
	ErrProjectNotActive = errors.New("project is not accepting contributions")
	// ErrLoading 首次加载尚未完成
	ErrLoading = errors.New("projects are still loading")
)

// Store 项目与贡献记录的读写接口
type Store interface {
	// ListProjects 返回所有项目的快照，保持插入顺序
	ListProjects(ctx context.Context) ([]model.Project, error)
	// GetProjectByID 按ID查找，不存在时返回 ok=false 而不是错误
	GetProjectByID(ctx context.Context, id int64) (model.Project, bool, error)
	// GetProjectsByStatus 按状态精确过滤，保持原有顺序
	GetProjectsByStatus(ctx context.Context, status model.ProjectStatus) ([]model.Project, error)
	// GetInvestorsByProject 返回项目的贡献记录，保持插入顺序
	GetInvestorsByProject(ctx context.Context, projectID int64) ([]model.Investor, error)
	// CreateProject 创建待开始的项目，当前金额为0，不检查名称或代号重复
	CreateProject(ctx context.Context, draft model.ProjectDraft) (model.Project, error)
	// Contribute 增加项目当前金额并追加一条贡献记录。
	// 金额须由调用方预先校验；项目不存在时返回 ErrProjectNotFound 且不追加记录。
	// 状态条件在落库时检查，不满足时返回 ErrProjectNotActive。
	Contribute(ctx context.Context, projectID int64, amount float64, currency model.Currency, walletAddress string, opts ...ContributeOption) (model.Investor, error)
}

// ContributeOption 贡献写入的附加条件
type ContributeOption func(*contributeOptions)

type contributeOptions struct {
	status model.ProjectStatus
}

// RequireStatus 仅当项目处于指定状态时写入
func RequireStatus(status model.ProjectStatus) ContributeOption {
	return func(o *contributeOptions) {
		o.status = status
	}
}

func applyContributeOptions(opts []ContributeOption) contributeOptions {
	var o contributeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// StatusUpdater 项目状态变更，仅供外部触发方（定时任务）使用
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id int64, status model.ProjectStatus) error
}

// Dataset 初始数据
type Dataset struct {
	AsOf      time.Time // 数据对应的时间点，零值表示时间是绝对的
	Projects  []model.Project
	Investors []model.Investor
}
