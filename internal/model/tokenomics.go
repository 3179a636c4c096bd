package model

// TokenomicsDetails 代币经济参数，归属于唯一的项目
type TokenomicsDetails struct {
	TotalSupply      float64            `json:"totalSupply" yaml:"total_supply"`
	Decimals         int                `json:"decimals" yaml:"decimals"`
	StakingTiers     []StakingTier      `json:"stakingTiers" yaml:"staking_tiers"`
	Distribution     map[string]float64 `json:"distribution,omitempty" yaml:"distribution"`
	Description      string             `json:"description,omitempty" yaml:"description"`
	VestingSchedule  string             `json:"vestingSchedule,omitempty" yaml:"vesting_schedule"`
	GambleFiElements []GambleFiElement  `json:"gambleFiElements,omitempty" yaml:"gamblefi_elements"`
}

// Clone 深拷贝
func (t TokenomicsDetails) Clone() TokenomicsDetails {
	out := t
	if t.StakingTiers != nil {
		out.StakingTiers = make([]StakingTier, len(t.StakingTiers))
		for i, tier := range t.StakingTiers {
			out.StakingTiers[i] = tier.Clone()
		}
	}
	if t.Distribution != nil {
		out.Distribution = make(map[string]float64, len(t.Distribution))
		for k, v := range t.Distribution {
			out.Distribution[k] = v
		}
	}
	if t.GambleFiElements != nil {
		out.GambleFiElements = make([]GambleFiElement, len(t.GambleFiElements))
		for i, el := range t.GambleFiElements {
			out.GambleFiElements[i] = el.Clone()
		}
	}
	return out
}

// StakingTier 质押档位
type StakingTier struct {
	TierID         string   `json:"tierId" yaml:"tier_id"`
	ProjectID      int64    `json:"projectId" yaml:"-"`
	LockPeriodDays int      `json:"lockPeriodDays" yaml:"lock_period_days"`
	RewardRate     float64  `json:"rewardRate" yaml:"reward_rate"` // 年化百分比
	MinStake       float64  `json:"minStake" yaml:"min_stake"`
	MaxStake       *float64 `json:"maxStake,omitempty" yaml:"max_stake"` // nil 表示不设上限
	TotalStaked    float64  `json:"totalStaked" yaml:"total_staked"`
}

// Clone 深拷贝
func (s StakingTier) Clone() StakingTier {
	out := s
	if s.MaxStake != nil {
		v := *s.MaxStake
		out.MaxStake = &v
	}
	return out
}

// GambleFiType 博彩玩法类型
type GambleFiType string

const (
	GambleFiPrediction   GambleFiType = "prediction"
	GambleFiLottery      GambleFiType = "lottery"
	GambleFiMilestoneBet GambleFiType = "milestone_bet"
)

// GambleFiElement 项目附带的预测/抽奖玩法
type GambleFiElement struct {
	ID           string       `json:"id" yaml:"id"`
	Type         GambleFiType `json:"type" yaml:"type"`
	Title        string       `json:"title" yaml:"title"`
	Description  string       `json:"description" yaml:"description"`
	TargetValue  *float64     `json:"targetValue,omitempty" yaml:"target_value"`
	Odds         *float64     `json:"odds,omitempty" yaml:"odds"`
	Participants int          `json:"participants" yaml:"participants"`
	TotalPool    float64      `json:"totalPool" yaml:"total_pool"`
	Status       string       `json:"status" yaml:"status"`
}

// Clone 深拷贝
func (g GambleFiElement) Clone() GambleFiElement {
	out := g
	if g.TargetValue != nil {
		v := *g.TargetValue
		out.TargetValue = &v
	}
	if g.Odds != nil {
		v := *g.Odds
		out.Odds = &v
	}
	return out
}
