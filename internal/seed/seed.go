// Package seed 初始数据加载，默认使用内嵌的 projects.yaml。
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/blues/launchpad/internal/model"
	"github.com/blues/launchpad/internal/store"
	"gopkg.in/yaml.v3"
)

//go:embed projects.yaml
var defaultSeed []byte

type file struct {
	AsOf      time.Time       `yaml:"as_of"`
	Projects  []projectEntry  `yaml:"projects"`
	Investors []investorEntry `yaml:"investors"`
}

type projectEntry struct {
	ID              int64                   `yaml:"id"`
	ProjectName     string                  `yaml:"project_name"`
	TokenName       string                  `yaml:"token_name"`
	TokenSymbol     string                  `yaml:"token_symbol"`
	FundingGoal     float64                 `yaml:"funding_goal"`
	CurrentFunds    float64                 `yaml:"current_funds"`
	StartDate       time.Time               `yaml:"start_date"`
	EndDate         time.Time               `yaml:"end_date"`
	Status          string                  `yaml:"status"`
	OwnerAddress    string                  `yaml:"owner_address"`
	ContractAddress string                  `yaml:"contract_address"`
	Description     string                  `yaml:"description"`
	ImageURL        string                  `yaml:"image_url"`
	Tokenomics      model.TokenomicsDetails `yaml:"tokenomics"`
	SocialLinks     *model.SocialLinks      `yaml:"social_links"`
}

type investorEntry struct {
	ID                   int64     `yaml:"id"`
	ProjectID            int64     `yaml:"project_id"`
	WalletAddress        string    `yaml:"wallet_address"`
	ContributionAmount   float64   `yaml:"contribution_amount"`
	ContributionCurrency string    `yaml:"contribution_currency"`
	Timestamp            time.Time `yaml:"timestamp"`
	TransactionHash      string    `yaml:"transaction_hash"`
}

// Default 内嵌的初始数据
func Default() (store.Dataset, error) {
	return Parse(defaultSeed)
}

// Load 从文件读取初始数据，path为空时使用内嵌数据
func Load(path string) (store.Dataset, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return store.Dataset{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse 解析YAML并检查ID唯一、状态与币种合法、贡献记录引用的项目存在
func Parse(data []byte) (store.Dataset, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return store.Dataset{}, fmt.Errorf("decode seed: %w", err)
	}

	ds := store.Dataset{
		AsOf:      f.AsOf.UTC(),
		Projects:  make([]model.Project, 0, len(f.Projects)),
		Investors: make([]model.Investor, 0, len(f.Investors)),
	}

	projectIDs := make(map[int64]bool, len(f.Projects))
	for _, e := range f.Projects {
		if e.ID <= 0 || projectIDs[e.ID] {
			return store.Dataset{}, fmt.Errorf("seed project %q: invalid or duplicate id %d", e.ProjectName, e.ID)
		}
		projectIDs[e.ID] = true

		status, err := model.ParseProjectStatus(e.Status)
		if err != nil {
			return store.Dataset{}, fmt.Errorf("seed project %d: %w", e.ID, err)
		}

		p := model.Project{
			ID:                e.ID,
			ProjectName:       e.ProjectName,
			TokenName:         e.TokenName,
			TokenSymbol:       e.TokenSymbol,
			Description:       e.Description,
			ImageURL:          e.ImageURL,
			FundingGoal:       e.FundingGoal,
			CurrentFunds:      e.CurrentFunds,
			StartDate:         e.StartDate.UTC(),
			EndDate:           e.EndDate.UTC(),
			Status:            status,
			OwnerAddress:      e.OwnerAddress,
			ContractAddress:   e.ContractAddress,
			TokenomicsDetails: e.Tokenomics,
			SocialLinks:       e.SocialLinks,
		}
		p.LinkTiers()
		ds.Projects = append(ds.Projects, p)
	}

	investorIDs := make(map[int64]bool, len(f.Investors))
	for _, e := range f.Investors {
		if e.ID <= 0 || investorIDs[e.ID] {
			return store.Dataset{}, fmt.Errorf("seed investor: invalid or duplicate id %d", e.ID)
		}
		investorIDs[e.ID] = true

		if !projectIDs[e.ProjectID] {
			return store.Dataset{}, fmt.Errorf("seed investor %d: %w", e.ID, store.ErrProjectNotFound)
		}
		currency, err := model.ParseCurrency(e.ContributionCurrency)
		if err != nil {
			return store.Dataset{}, fmt.Errorf("seed investor %d: %w", e.ID, err)
		}

		ds.Investors = append(ds.Investors, model.Investor{
			ID:                   e.ID,
			ProjectID:            e.ProjectID,
			WalletAddress:        e.WalletAddress,
			ContributionAmount:   e.ContributionAmount,
			ContributionCurrency: currency,
			Timestamp:            e.Timestamp.UTC(),
			TransactionHash:      e.TransactionHash,
		})
	}

	return ds, nil
}

// Rebase 将所有日期平移 now-AsOf，使数据看起来是在 now 录入的。AsOf 为零值时原样返回
func Rebase(ds store.Dataset, now time.Time) store.Dataset {
	if ds.AsOf.IsZero() {
		return ds
	}
	now = now.UTC()
	shift := now.Sub(ds.AsOf)

	out := store.Dataset{
		AsOf:      now,
		Projects:  make([]model.Project, 0, len(ds.Projects)),
		Investors: make([]model.Investor, 0, len(ds.Investors)),
	}
	for _, p := range ds.Projects {
		p = p.Clone()
		p.StartDate = p.StartDate.Add(shift)
		p.EndDate = p.EndDate.Add(shift)
		out.Projects = append(out.Projects, p)
	}
	for _, inv := range ds.Investors {
		inv.Timestamp = inv.Timestamp.Add(shift)
		out.Investors = append(out.Investors, inv)
	}
	return out
}
