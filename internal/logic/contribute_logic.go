package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
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
	// ErrProjectNotActive 项目不在进行中
	ErrProjectNotActive = store.ErrProjectNotActive
	// ErrInvalidCurrency 不支持的币种
	ErrInvalidCurrency = errors.New("unsupported currency")
)

// ContributeRequest 贡献请求，金额保持用户输入的原始文本
type ContributeRequest struct {
	ProjectID     int64
	Amount        string
	Currency      string // 为空时按 SOL 处理
	WalletAddress string
}

// ContributeOptions 贡献限制
type ContributeOptions struct {
	MinAmount     float64
	MaxAmount     float64
	RequireActive bool
}

// DefaultContributeOptions 默认限制：0.1 ~ 1000，仅进行中的项目
func DefaultContributeOptions() ContributeOptions {
	return ContributeOptions{
		MinAmount:     validation.DefaultMinContribution,
		MaxAmount:     validation.DefaultMaxContribution,
		RequireActive: true,
	}
}

// ContributeLogic 贡献业务逻辑
type ContributeLogic struct {
	store   store.Store
	metrics *observability.Metrics
	opts    ContributeOptions
}

// NewContributeLogic 创建贡献业务逻辑
func NewContributeLogic(s store.Store, metrics *observability.Metrics, opts ContributeOptions) *ContributeLogic {
	return &ContributeLogic{store: s, metrics: metrics, opts: opts}
}

// ValidateAmount 校验金额，不写入存储
func (c *ContributeLogic) ValidateAmount(amountText string, currency model.Currency) validation.Result {
	res := validation.ValidateContribution(amountText, currency, c.opts.MinAmount, c.opts.MaxAmount)
	recordFailures(c.metrics, "contribution", res)
	return res
}

// ParseCurrency 解析币种，空值默认 SOL
func ParseCurrency(s string) (model.Currency, error) {
	if strings.TrimSpace(s) == "" {
		return model.CurrencySOL, nil
	}
	currency, err := model.ParseCurrency(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
	return currency, nil
}

// Contribute 参与项目众筹
func (c *ContributeLogic) Contribute(ctx context.Context, req ContributeRequest) (model.Investor, error) {
	addr, err := wallet.Parse(req.WalletAddress)
	if err != nil {
		return model.Investor{}, ErrWalletRequired
	}

	currency, err := ParseCurrency(req.Currency)
	if err != nil {
		return model.Investor{}, err
	}

	// 验证贡献金额
	res := c.ValidateAmount(req.Amount, currency)
	if !res.Valid {
		return model.Investor{}, res.Err()
	}
	amount, _ := validation.ParseAmount(req.Amount)

	// 检查项目是否存在且状态正确
	began := time.Now()
	project, ok, err := c.store.GetProjectByID(ctx, req.ProjectID)
	c.metrics.ObserveStore("get_project", began, err)
	if err != nil {
		return model.Investor{}, fmt.Errorf("获取项目详情失败: %w", err)
	}
	if !ok {
		return model.Investor{}, fmt.Errorf("project %d: %w", req.ProjectID, store.ErrProjectNotFound)
	}
	if c.opts.RequireActive && project.Status != model.ProjectStatusActive {
		return model.Investor{}, fmt.Errorf("project %d is %s: %w", project.ID, project.Status, ErrProjectNotActive)
	}

	// 确认期间定时任务可能已结算项目，落库时再按状态判断一次
	var opts []store.ContributeOption
	if c.opts.RequireActive {
		opts = append(opts, store.RequireStatus(model.ProjectStatusActive))
	}

	began = time.Now()
	investor, err := c.store.Contribute(ctx, project.ID, amount, currency, addr.Value, opts...)
	c.metrics.ObserveStore("contribute", began, err)
	if err != nil {
		return model.Investor{}, fmt.Errorf("贡献失败: %w", err)
	}

	c.metrics.ContributionsTotal.WithLabelValues(string(currency)).Inc()
	c.metrics.ContributedAmount.WithLabelValues(string(currency)).Add(amount)
	logger.With(
		zap.Int64("projectId", project.ID),
		zap.String("wallet", wallet.Short(addr.Value)),
		zap.String("txHash", investor.TransactionHash),
	).Info("contribution of %s %s confirmed", req.Amount, currency)

	return investor, nil
}
