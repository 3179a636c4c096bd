package model

import (
	"fmt"
	"time"
)

// Project 代币发行项目
type Project struct {
	ID        int64     `json:"projectId" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// 基本信息
	ProjectName string `json:"projectName" gorm:"not null"`
	TokenName   string `json:"tokenName" gorm:"not null"`
	TokenSymbol string `json:"tokenSymbol" gorm:"not null;index"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	ImageURL    string `json:"imageUrl,omitempty"`

	// 众筹信息
	FundingGoal  float64 `json:"fundingGoal" gorm:"not null"`
	CurrentFunds float64 `json:"currentFunds" gorm:"default:0"`

	// 时间信息
	StartDate time.Time `json:"startDate" gorm:"not null"`
	EndDate   time.Time `json:"endDate" gorm:"not null"`

	// 状态
	Status ProjectStatus `json:"status" gorm:"default:'pending';index"`

	// 创建者信息
	OwnerAddress string `json:"ownerAddress" gorm:"not null"`

	// 区块链信息
	ContractAddress string `json:"contractAddress,omitempty"`

	TokenomicsDetails TokenomicsDetails `json:"tokenomicsDetails" gorm:"type:text;serializer:json"`
	SocialLinks       *SocialLinks      `json:"socialLinks,omitempty" gorm:"type:text;serializer:json"`
}

// TableName 自定义表名
func (Project) TableName() string {
	return "project"
}

// Clone 深拷贝，快照不与存储共享任何切片或映射
func (p Project) Clone() Project {
	out := p
	out.TokenomicsDetails = p.TokenomicsDetails.Clone()
	if p.SocialLinks != nil {
		links := *p.SocialLinks
		out.SocialLinks = &links
	}
	return out
}

// ProjectDraft 创建项目时由调用方提供的字段（不含ID、当前金额与状态）
type ProjectDraft struct {
	ProjectName       string
	TokenName         string
	TokenSymbol       string
	Description       string
	ImageURL          string
	FundingGoal       float64
	StartDate         time.Time
	EndDate           time.Time
	OwnerAddress      string
	ContractAddress   string
	TokenomicsDetails TokenomicsDetails
	SocialLinks       *SocialLinks
}

// NewProject 根据草稿生成待开始的项目，当前金额固定为0
func NewProject(id int64, d ProjectDraft) Project {
	p := Project{
		ID:                id,
		ProjectName:       d.ProjectName,
		TokenName:         d.TokenName,
		TokenSymbol:       d.TokenSymbol,
		Description:       d.Description,
		ImageURL:          d.ImageURL,
		FundingGoal:       d.FundingGoal,
		CurrentFunds:      0,
		StartDate:         d.StartDate.UTC(),
		EndDate:           d.EndDate.UTC(),
		Status:            ProjectStatusPending,
		OwnerAddress:      d.OwnerAddress,
		ContractAddress:   d.ContractAddress,
		TokenomicsDetails: d.TokenomicsDetails.Clone(),
	}
	if d.SocialLinks != nil {
		links := *d.SocialLinks
		p.SocialLinks = &links
	}
	p.LinkTiers()
	return p
}

// LinkTiers 将质押档位的项目引用指向当前项目
func (p *Project) LinkTiers() {
	for i := range p.TokenomicsDetails.StakingTiers {
		p.TokenomicsDetails.StakingTiers[i].ProjectID = p.ID
	}
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "pending"   // 待开始
	ProjectStatusActive    ProjectStatus = "active"    // 进行中
	ProjectStatusCompleted ProjectStatus = "completed" // 已完成
	ProjectStatusFailed    ProjectStatus = "failed"    // 失败
	ProjectStatusRefunded  ProjectStatus = "refunded"  // 已退款
)

// ProjectStatuses 所有合法状态，按生命周期顺序
var ProjectStatuses = []ProjectStatus{
	ProjectStatusPending,
	ProjectStatusActive,
	ProjectStatusCompleted,
	ProjectStatusFailed,
	ProjectStatusRefunded,
}

// ParseProjectStatus 解析状态字符串
func ParseProjectStatus(s string) (ProjectStatus, error) {
	for _, status := range ProjectStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown project status %q", s)
}

// SocialLinks 社交链接
type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty" yaml:"twitter"`
	Telegram string `json:"telegram,omitempty" yaml:"telegram"`
	Discord  string `json:"discord,omitempty" yaml:"discord"`
	Website  string `json:"website,omitempty" yaml:"website"`
}
