package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blues/launchpad/internal/model"
	"github.com/blues/launchpad/internal/txhash"
	"gorm.io/gorm"
)

// GormStore 基于数据库的实现，没有模拟延迟
type GormStore struct {
	db     *gorm.DB
	hashes txhash.Generator
	now    func() time.Time
}

var (
	_ Store         = (*GormStore)(nil)
	_ StatusUpdater = (*GormStore)(nil)
)

// NewGormStore 创建数据库存储，hashes 为nil时使用随机占位哈希
func NewGormStore(db *gorm.DB, hashes txhash.Generator) *GormStore {
	if hashes == nil {
		hashes = txhash.Random()
	}
	return &GormStore{db: db, hashes: hashes, now: time.Now}
}

// Seed 在空库中写入初始数据，已有项目时跳过
func (s *GormStore) Seed(ctx context.Context, data Dataset) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Project{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count projects: %w", err)
	}
	if count > 0 {
		return nil
	}

	// 主键交给数据库生成，贡献记录按新ID重新关联
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make(map[int64]int64, len(data.Projects))
		for _, p := range data.Projects {
			seedID := p.ID
			p := p.Clone()
			p.ID = 0
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("seed project %d: %w", seedID, err)
			}
			ids[seedID] = p.ID
		}
		for _, inv := range data.Investors {
			projectID, ok := ids[inv.ProjectID]
			if !ok {
				return fmt.Errorf("seed investor %d: %w", inv.ID, ErrProjectNotFound)
			}
			inv.ID = 0
			inv.ProjectID = projectID
			if err := tx.Create(&inv).Error; err != nil {
				return fmt.Errorf("seed investor for project %d: %w", projectID, err)
			}
		}
		return nil
	})
}

// ListProjects 获取项目列表
func (s *GormStore) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return linkAll(projects), nil
}

// GetProjectByID 获取项目详情
func (s *GormStore) GetProjectByID(ctx context.Context, id int64) (model.Project, bool, error) {
	var project model.Project
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Project{}, false, nil
		}
		return model.Project{}, false, fmt.Errorf("get project %d: %w", id, err)
	}
	project.LinkTiers()
	return project, true, nil
}

// GetProjectsByStatus 按状态获取项目
func (s *GormStore) GetProjectsByStatus(ctx context.Context, status model.ProjectStatus) ([]model.Project, error) {
	var projects []model.Project
	if err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC").
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects by status %s: %w", status, err)
	}
	return linkAll(projects), nil
}

// GetInvestorsByProject 获取项目贡献记录
func (s *GormStore) GetInvestorsByProject(ctx context.Context, projectID int64) ([]model.Investor, error) {
	investors := []model.Investor{}
	if err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&investors).Error; err != nil {
		return nil, fmt.Errorf("list investors of project %d: %w", projectID, err)
	}
	return investors, nil
}

// CreateProject 创建项目
func (s *GormStore) CreateProject(ctx context.Context, draft model.ProjectDraft) (model.Project, error) {
	project := model.NewProject(0, draft)
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return model.Project{}, fmt.Errorf("create project: %w", err)
	}
	project.LinkTiers()
	return project, nil
}

// Contribute 在事务中累加金额并写入贡献记录，状态条件与累加在同一条UPDATE中判断
func (s *GormStore) Contribute(ctx context.Context, projectID int64, amount float64, currency model.Currency, walletAddress string, opts ...ContributeOption) (model.Investor, error) {
	o := applyContributeOptions(opts)
	investor := model.Investor{
		ProjectID:            projectID,
		WalletAddress:        walletAddress,
		ContributionAmount:   amount,
		ContributionCurrency: currency,
		Timestamp:            s.now(),
		TransactionHash:      s.hashes.Next(projectID, walletAddress),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&model.Project{}).Where("id = ?", projectID)
		if o.status != "" {
			q = q.Where("status = ?", o.status)
		}
		res := q.Update("current_funds", gorm.Expr("current_funds + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return missingOrInactive(tx, projectID)
		}
		return tx.Create(&investor).Error
	})
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) || errors.Is(err, ErrProjectNotActive) {
			return model.Investor{}, err
		}
		return model.Investor{}, fmt.Errorf("contribute to project %d: %w", projectID, err)
	}
	return investor, nil
}

// missingOrInactive 区分未更新的原因：项目不存在或状态不符
func missingOrInactive(tx *gorm.DB, projectID int64) error {
	var project model.Project
	if err := tx.Select("id", "status").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return fmt.Errorf("project %d is %s: %w", projectID, project.Status, ErrProjectNotActive)
}

// UpdateStatus 修改项目状态
func (s *GormStore) UpdateStatus(ctx context.Context, id int64, status model.ProjectStatus) error {
	res := s.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update project %d status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func linkAll(projects []model.Project) []model.Project {
	if projects == nil {
		return []model.Project{}
	}
	for i := range projects {
		projects[i].LinkTiers()
	}
	return projects
}
