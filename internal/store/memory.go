package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blues/launchpad/internal/model"
	"github.com/blues/launchpad/internal/txhash"
)

// MemoryOptions 内存存储的模拟延迟与依赖
type MemoryOptions struct {
	LoadDelay       time.Duration // 初始加载延迟
	CreateDelay     time.Duration // 创建项目延迟
	ContributeDelay time.Duration // 交易确认延迟
	Hashes          txhash.Generator
	Now             func() time.Time
}

// DefaultMemoryOptions 默认延迟：加载1秒、创建2秒、确认3秒
func DefaultMemoryOptions() MemoryOptions {
	return MemoryOptions{
		LoadDelay:       time.Second,
		CreateDelay:     2 * time.Second,
		ContributeDelay: 3 * time.Second,
	}
}

// MemoryStore 进程内的模拟存储。
// 延迟在加锁之前等待，落库在锁内完成，同一项目的并发贡献按到达顺序依次累加。
type MemoryStore struct {
	mu             sync.RWMutex
	projects       []model.Project
	investors      []model.Investor
	nextProjectID  int64
	nextInvestorID int64
	loading        bool

	opts MemoryOptions
}

var (
	_ Store         = (*MemoryStore)(nil)
	_ StatusUpdater = (*MemoryStore)(nil)
)

// NewMemoryStore 创建内存存储并直接装入初始数据
func NewMemoryStore(opts MemoryOptions, initial Dataset) *MemoryStore {
	if opts.Hashes == nil {
		opts.Hashes = txhash.Random()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &MemoryStore{opts: opts}
	s.install(initial)
	return s
}

// Load 模拟首次加载：等待加载延迟后替换全部数据。
// 期间 Loading 返回true，写操作返回 ErrLoading，避免新数据被初始数据覆盖。
func (s *MemoryStore) Load(ctx context.Context, data Dataset) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	err := wait(ctx, s.opts.LoadDelay)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return err
	}
	s.install(data)
	return nil
}

// Loading 是否处于首次加载中
func (s *MemoryStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// install 调用方需持有写锁或处于构造阶段
func (s *MemoryStore) install(data Dataset) {
	s.projects = make([]model.Project, 0, len(data.Projects))
	s.investors = make([]model.Investor, 0, len(data.Investors))
	s.nextProjectID, s.nextInvestorID = 1, 1

	for _, p := range data.Projects {
		p = p.Clone()
		p.LinkTiers()
		s.projects = append(s.projects, p)
		if p.ID >= s.nextProjectID {
			s.nextProjectID = p.ID + 1
		}
	}
	for _, inv := range data.Investors {
		s.investors = append(s.investors, inv)
		if inv.ID >= s.nextInvestorID {
			s.nextInvestorID = inv.ID + 1
		}
	}
}

// ListProjects 返回所有项目的快照
func (s *MemoryStore) ListProjects(_ context.Context) ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Project, len(s.projects))
	for i, p := range s.projects {
		result[i] = p.Clone()
	}
	return result, nil
}

// GetProjectByID 线性查找项目
func (s *MemoryStore) GetProjectByID(_ context.Context, id int64) (model.Project, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.projects[i].Clone(), true, nil
	}
	return model.Project{}, false, nil
}

// GetProjectsByStatus 按状态过滤
func (s *MemoryStore) GetProjectsByStatus(_ context.Context, status model.ProjectStatus) ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []model.Project{}
	for _, p := range s.projects {
		if p.Status == status {
			result = append(result, p.Clone())
		}
	}
	return result, nil
}

// GetInvestorsByProject 按项目过滤贡献记录
func (s *MemoryStore) GetInvestorsByProject(_ context.Context, projectID int64) ([]model.Investor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []model.Investor{}
	for _, inv := range s.investors {
		if inv.ProjectID == projectID {
			result = append(result, inv)
		}
	}
	return result, nil
}

// CreateProject 等待创建延迟后追加项目
func (s *MemoryStore) CreateProject(ctx context.Context, draft model.ProjectDraft) (model.Project, error) {
	if err := wait(ctx, s.opts.CreateDelay); err != nil {
		return model.Project{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return model.Project{}, ErrLoading
	}

	now := s.opts.Now()
	p := model.NewProject(s.nextProjectID, draft)
	p.CreatedAt, p.UpdatedAt = now, now
	s.nextProjectID++
	s.projects = append(s.projects, p)

	return p.Clone(), nil
}

// Contribute 等待交易确认延迟后累加金额并追加贡献记录，状态条件在确认后重新检查
func (s *MemoryStore) Contribute(ctx context.Context, projectID int64, amount float64, currency model.Currency, walletAddress string, opts ...ContributeOption) (model.Investor, error) {
	o := applyContributeOptions(opts)
	if err := wait(ctx, s.opts.ContributeDelay); err != nil {
		return model.Investor{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return model.Investor{}, ErrLoading
	}
	i := s.indexOf(projectID)
	if i < 0 {
		return model.Investor{}, ErrProjectNotFound
	}
	if o.status != "" && s.projects[i].Status != o.status {
		return model.Investor{}, fmt.Errorf("project %d is %s: %w", projectID, s.projects[i].Status, ErrProjectNotActive)
	}

	now := s.opts.Now()
	s.projects[i].CurrentFunds += amount
	s.projects[i].UpdatedAt = now

	inv := model.Investor{
		ID:                   s.nextInvestorID,
		ProjectID:            projectID,
		WalletAddress:        walletAddress,
		ContributionAmount:   amount,
		ContributionCurrency: currency,
		Timestamp:            now,
		TransactionHash:      s.opts.Hashes.Next(projectID, walletAddress),
	}
	s.nextInvestorID++
	s.investors = append(s.investors, inv)

	return inv, nil
}

// UpdateStatus 修改项目状态
func (s *MemoryStore) UpdateStatus(_ context.Context, id int64, status model.ProjectStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrProjectNotFound
	}
	s.projects[i].Status = status
	s.projects[i].UpdatedAt = s.opts.Now()
	return nil
}

func (s *MemoryStore) indexOf(id int64) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

// wait 可取消的一次性定时器
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
