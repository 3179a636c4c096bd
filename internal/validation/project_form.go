package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/blues/launchpad/internal/model"
)

const (
	projectNameMin = 3
	projectNameMax = 50
	tokenNameMin   = 2
	tokenNameMax   = 30

	// MaxFundingGoal 单个项目的最高募资目标
	MaxFundingGoal = 1_000_000
)

var tokenSymbolPattern = regexp.MustCompile(`^[A-Z0-9]{2,10}$`)

// dateLayouts 表单日期可接受的格式，依次尝试
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ProjectForm 项目创建表单的原始输入
type ProjectForm struct {
	ProjectName string  `json:"projectName"`
	TokenName   string  `json:"tokenName"`
	TokenSymbol string  `json:"tokenSymbol"`
	FundingGoal float64 `json:"fundingGoal"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
}

// ValidateProjectForm 校验项目创建表单，以当前时间判断开始日期
func ValidateProjectForm(f ProjectForm) Result {
	return ValidateProjectFormAt(f, time.Now())
}

// ValidateProjectFormAt 校验项目创建表单，一次性返回所有违反的规则
func ValidateProjectFormAt(f ProjectForm, now time.Time) Result {
	var errs []FieldError

	errs = checkLength(errs, "projectName", "Project name", f.ProjectName, projectNameMin, projectNameMax)
	errs = checkLength(errs, "tokenName", "Token name", f.TokenName, tokenNameMin, tokenNameMax)

	switch {
	case strings.TrimSpace(f.TokenSymbol) == "":
		errs = append(errs, FieldError{Field: "tokenSymbol", Code: RequiredField, Message: "Token symbol is required"})
	case !tokenSymbolPattern.MatchString(f.TokenSymbol):
		errs = append(errs, FieldError{Field: "tokenSymbol", Code: FormatInvalid, Message: "Token symbol must be 2-10 uppercase letters or numbers"})
	}

	goal := f.FundingGoal
	switch {
	case math.IsNaN(goal) || math.IsInf(goal, 0) || goal <= 0:
		errs = append(errs, FieldError{Field: "fundingGoal", Code: RangeInvalid, Message: "Funding goal must be greater than 0"})
	case goal > MaxFundingGoal:
		errs = append(errs, FieldError{Field: "fundingGoal", Code: RangeInvalid, Message: "Funding goal must not exceed 1,000,000 SOL"})
	}

	start, startErr := parseDateField("startDate", "Start date", f.StartDate)
	if startErr != nil {
		errs = append(errs, *startErr)
	}
	end, endErr := parseDateField("endDate", "End date", f.EndDate)
	if endErr != nil {
		errs = append(errs, *endErr)
	}

	if startErr == nil && endErr == nil {
		if !start.After(now) {
			errs = append(errs, FieldError{Field: "startDate", Code: PastDate, Message: "Start date must be in the future"})
		}
		if !end.After(start) {
			errs = append(errs, FieldError{Field: "endDate", Code: OrderInvalid, Message: "End date must be after start date"})
		}
	}

	return newResult(errs)
}

// ParseDate 将表单日期文本规范化为UTC时间
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseDateField(field, label, s string) (time.Time, *FieldError) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, &FieldError{Field: field, Code: RequiredField, Message: label + " is required"}
	}
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, &FieldError{Field: field, Code: FormatInvalid, Message: label + " is not a valid date"}
	}
	return t, nil
}

// checkLength 必填 + 长度区间检查，长度按字符计
func checkLength(errs []FieldError, field, label, value string, lo, hi int) []FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errs, FieldError{Field: field, Code: RequiredField, Message: label + " is required"})
	}
	n := utf8.RuneCountInString(value)
	if n < lo {
		return append(errs, FieldError{Field: field, Code: LengthOutOfRange, Message: fmt.Sprintf("%s must be at least %d characters", label, lo)})
	}
	if n > hi {
		return append(errs, FieldError{Field: field, Code: LengthOutOfRange, Message: fmt.Sprintf("%s must be at most %d characters", label, hi)})
	}
	return errs
}

// ValidateStakingTiers 校验质押档位，累积所有档位的错误
func ValidateStakingTiers(tiers []model.StakingTier) Result {
	var errs []FieldError
	for i, tier := range tiers {
		prefix := fmt.Sprintf("stakingTiers[%d].", i)
		if tier.LockPeriodDays <= 0 {
			errs = append(errs, FieldError{Field: prefix + "lockPeriodDays", Code: RangeInvalid, Message: "Lock period must be a positive number of days"})
		}
		if math.IsNaN(tier.RewardRate) || tier.RewardRate < 0 {
			errs = append(errs, FieldError{Field: prefix + "rewardRate", Code: RangeInvalid, Message: "Reward rate must not be negative"})
		}
		if tier.MinStake < 0 {
			errs = append(errs, FieldError{Field: prefix + "minStake", Code: RangeInvalid, Message: "Minimum stake must not be negative"})
		}
		if tier.MaxStake != nil && tier.MinStake > *tier.MaxStake {
			errs = append(errs, FieldError{Field: prefix + "maxStake", Code: OrderInvalid, Message: "Maximum stake must not be below minimum stake"})
		}
	}
	return newResult(errs)
}
