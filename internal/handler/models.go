package handler

import (
	"time"

	"github.com/blues/launchpad/internal/logic"
	"github.com/blues/launchpad/internal/model"
	"github.com/blues/launchpad/internal/share"
	"github.com/blues/launchpad/internal/validation"
	"github.com/blues/launchpad/internal/wallet"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 项目相关请求模型

// CreateProjectRequest 创建项目请求，日期为字符串，由校验层解析
type CreateProjectRequest struct {
	ProjectName       string                  `json:"projectName"`
	TokenName         string                  `json:"tokenName"`
	TokenSymbol       string                  `json:"tokenSymbol"`
	Description       string                  `json:"description"`
	ImageURL          string                  `json:"imageUrl"`
	FundingGoal       float64                 `json:"fundingGoal"`
	StartDate         string                  `json:"startDate"`
	EndDate           string                  `json:"endDate"`
	OwnerAddress      string                  `json:"ownerAddress"`
	TokenomicsDetails model.TokenomicsDetails `json:"tokenomicsDetails"`
	SocialLinks       *model.SocialLinks      `json:"socialLinks"`
}

// Form 表单校验字段
func (r CreateProjectRequest) Form() validation.ProjectForm {
	return validation.ProjectForm{
		ProjectName: r.ProjectName,
		TokenName:   r.TokenName,
		TokenSymbol: r.TokenSymbol,
		FundingGoal: r.FundingGoal,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

// ToLogic 转换为logic层请求
func (r CreateProjectRequest) ToLogic() logic.CreateProjectRequest {
	return logic.CreateProjectRequest{
		Form:              r.Form(),
		Description:       r.Description,
		ImageURL:          r.ImageURL,
		OwnerAddress:      r.OwnerAddress,
		TokenomicsDetails: r.TokenomicsDetails,
		SocialLinks:       r.SocialLinks,
	}
}

// 贡献相关请求模型

// ContributeRequest 贡献请求，金额保留用户输入的文本
type ContributeRequest struct {
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	WalletAddress string `json:"walletAddress"`
}

// ValidateContributionRequest 金额预校验请求
type ValidateContributionRequest struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// 项目相关响应模型

// ProjectResponse 项目响应模型
type ProjectResponse struct {
	ID                int64                   `json:"projectId"`
	ProjectName       string                  `json:"projectName"`
	TokenName         string                  `json:"tokenName"`
	TokenSymbol       string                  `json:"tokenSymbol"`
	Description       string                  `json:"description,omitempty"`
	ImageURL          string                  `json:"imageUrl,omitempty"`
	FundingGoal       float64                 `json:"fundingGoal"`
	CurrentFunds      float64                 `json:"currentFunds"`
	ProgressPercent   float64                 `json:"progressPercent"`
	StartDate         time.Time               `json:"startDate"`
	EndDate           time.Time               `json:"endDate"`
	Status            model.ProjectStatus     `json:"status"`
	OwnerAddress      string                  `json:"ownerAddress"`
	ContractAddress   string                  `json:"contractAddress,omitempty"`
	TokenomicsDetails model.TokenomicsDetails `json:"tokenomicsDetails"`
	SocialLinks       *model.SocialLinks      `json:"socialLinks,omitempty"`
}

// GetProjectsResponse 获取项目列表响应
type GetProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Loading  bool              `json:"loading"` // 初始数据尚未加载完成
}

// GetProjectResponse 获取项目详情响应
type GetProjectResponse struct {
	Project ProjectResponse `json:"project"`
}

// 贡献记录相关响应模型

// InvestorResponse 贡献记录响应模型
type InvestorResponse struct {
	ID                   int64          `json:"investorId"`
	ProjectID            int64          `json:"projectId"`
	WalletAddress        string         `json:"walletAddress"`
	WalletShort          string         `json:"walletShort"`
	ContributionAmount   float64        `json:"contributionAmount"`
	ContributionCurrency model.Currency `json:"contributionCurrency"`
	Timestamp            time.Time      `json:"timestamp"`
	TransactionHash      string         `json:"transactionHash,omitempty"`
}

// GetProjectInvestorsResponse 获取项目贡献记录响应
type GetProjectInvestorsResponse struct {
	Investors []InvestorResponse `json:"investors"`
}

// ContributeResponse 贡献响应
type ContributeResponse struct {
	Investor InvestorResponse `json:"investor"`
}

// GetProjectStatsResponse 获取项目统计响应
type GetProjectStatsResponse struct {
	Stats logic.ProjectStats `json:"stats"`
}

// GetAllProjectStatsResponse 获取所有项目统计响应
type GetAllProjectStatsResponse struct {
	Stats logic.PlatformStats `json:"stats"`
}

// GetShareLinksResponse 分享链接响应
type GetShareLinksResponse struct {
	Links share.Links `json:"links"`
}

// 转换函数

// ToProjectResponse 将领域模型转换为响应模型
func ToProjectResponse(project *model.Project) ProjectResponse {
	progress := 0.0
	if project.FundingGoal > 0 {
		progress = project.CurrentFunds / project.FundingGoal * 100
	}
	return ProjectResponse{
		ID:                project.ID,
		ProjectName:       project.ProjectName,
		TokenName:         project.TokenName,
		TokenSymbol:       project.TokenSymbol,
		Description:       project.Description,
		ImageURL:          project.ImageURL,
		FundingGoal:       project.FundingGoal,
		CurrentFunds:      project.CurrentFunds,
		ProgressPercent:   progress,
		StartDate:         project.StartDate,
		EndDate:           project.EndDate,
		Status:            project.Status,
		OwnerAddress:      project.OwnerAddress,
		ContractAddress:   project.ContractAddress,
		TokenomicsDetails: project.TokenomicsDetails,
		SocialLinks:       project.SocialLinks,
	}
}

// ToProjectResponseList 将领域模型列表转换为响应模型列表
func ToProjectResponseList(projects []model.Project) []ProjectResponse {
	result := make([]ProjectResponse, len(projects))
	for i, project := range projects {
		result[i] = ToProjectResponse(&project)
	}
	return result
}

// ToInvestorResponse 将贡献记录转换为响应模型
func ToInvestorResponse(investor *model.Investor) InvestorResponse {
	return InvestorResponse{
		ID:                   investor.ID,
		ProjectID:            investor.ProjectID,
		WalletAddress:        investor.WalletAddress,
		WalletShort:          wallet.Short(investor.WalletAddress),
		ContributionAmount:   investor.ContributionAmount,
		ContributionCurrency: investor.ContributionCurrency,
		Timestamp:            investor.Timestamp,
		TransactionHash:      investor.TransactionHash,
	}
}

// ToInvestorResponseList 将贡献记录列表转换为响应模型列表
func ToInvestorResponseList(investors []model.Investor) []InvestorResponse {
	result := make([]InvestorResponse, len(investors))
	for i, investor := range investors {
		result[i] = ToInvestorResponse(&investor)
	}
	return result
}
