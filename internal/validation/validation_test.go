package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/blues/launchpad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func validForm() ProjectForm {
	return ProjectForm{
		ProjectName: "Green Energy DAO",
		TokenName:   "Green Energy Token",
		TokenSymbol: "GREEN",
		FundingGoal: 1000,
		StartDate:   "2026-03-10T10:00:00Z",
		EndDate:     "2026-04-10T10:00:00Z",
	}
}

func TestValidateProjectForm_Valid(t *testing.T) {
	res := ValidateProjectFormAt(validForm(), testNow)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateProjectForm_AccumulatesAllErrors(t *testing.T) {
	f := validForm()
	f.ProjectName = ""
	f.TokenSymbol = "abc!"
	f.FundingGoal = -5

	res := ValidateProjectFormAt(f, testNow)
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 3)

	assert.Equal(t, FieldError{Field: "projectName", Code: RequiredField, Message: "Project name is required"}, res.Errors[0])
	assert.Equal(t, "tokenSymbol", res.Errors[1].Field)
	assert.Equal(t, FormatInvalid, res.Errors[1].Code)
	assert.Equal(t, "fundingGoal", res.Errors[2].Field)
	assert.Equal(t, RangeInvalid, res.Errors[2].Code)
}

func TestValidateProjectForm_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProjectForm)
		field  string
		code   Code
	}{
		{"whitespace project name", func(f *ProjectForm) { f.ProjectName = "   " }, "projectName", RequiredField},
		{"short project name", func(f *ProjectForm) { f.ProjectName = "ab" }, "projectName", LengthOutOfRange},
		{"long project name", func(f *ProjectForm) { f.ProjectName = strings.Repeat("x", 51) }, "projectName", LengthOutOfRange},
		{"empty token name", func(f *ProjectForm) { f.TokenName = "" }, "tokenName", RequiredField},
		{"short token name", func(f *ProjectForm) { f.TokenName = "T" }, "tokenName", LengthOutOfRange},
		{"long token name", func(f *ProjectForm) { f.TokenName = strings.Repeat("t", 31) }, "tokenName", LengthOutOfRange},
		{"empty symbol", func(f *ProjectForm) { f.TokenSymbol = "" }, "tokenSymbol", RequiredField},
		{"lowercase symbol", func(f *ProjectForm) { f.TokenSymbol = "green" }, "tokenSymbol", FormatInvalid},
		{"one char symbol", func(f *ProjectForm) { f.TokenSymbol = "G" }, "tokenSymbol", FormatInvalid},
		{"eleven char symbol", func(f *ProjectForm) { f.TokenSymbol = "ABCDEFGHIJK" }, "tokenSymbol", FormatInvalid},
		{"zero goal", func(f *ProjectForm) { f.FundingGoal = 0 }, "fundingGoal", RangeInvalid},
		{"goal over cap", func(f *ProjectForm) { f.FundingGoal = 1_000_001 }, "fundingGoal", RangeInvalid},
		{"missing start", func(f *ProjectForm) { f.StartDate = "" }, "startDate", RequiredField},
		{"missing end", func(f *ProjectForm) { f.EndDate = "" }, "endDate", RequiredField},
		{"garbled start", func(f *ProjectForm) { f.StartDate = "next tuesday" }, "startDate", FormatInvalid},
		{"start in past", func(f *ProjectForm) { f.StartDate = "2026-02-01T00:00:00Z" }, "startDate", PastDate},
		{"start equals now", func(f *ProjectForm) { f.StartDate = testNow.Format(time.RFC3339) }, "startDate", PastDate},
		{"end before start", func(f *ProjectForm) { f.EndDate = "2026-03-09T10:00:00Z" }, "endDate", OrderInvalid},
		{"end equals start", func(f *ProjectForm) { f.EndDate = f.StartDate }, "endDate", OrderInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			res := ValidateProjectFormAt(f, testNow)
			assert.False(t, res.Valid)
			assert.True(t, res.Has(tt.field, tt.code), "errors: %+v", res.Errors)
		})
	}
}

func TestValidateProjectForm_BoundaryLengthsAccepted(t *testing.T) {
	f := validForm()
	f.ProjectName = "abc"
	f.TokenName = strings.Repeat("t", 30)
	f.TokenSymbol = "A1"
	f.FundingGoal = MaxFundingGoal
	assert.True(t, ValidateProjectFormAt(f, testNow).Valid)

	f.ProjectName = strings.Repeat("p", 50)
	f.TokenName = "tk"
	f.TokenSymbol = "ABCDEFGH12"
	assert.True(t, ValidateProjectFormAt(f, testNow).Valid)
}

func TestValidateProjectForm_DateLayouts(t *testing.T) {
	f := validForm()
	f.StartDate = "2026-03-10T10:00"
	f.EndDate = "2026-04-10"
	assert.True(t, ValidateProjectFormAt(f, testNow).Valid)
}

func TestValidateProjectForm_MissingDatesSkipOrdering(t *testing.T) {
	f := validForm()
	f.StartDate = ""
	f.EndDate = ""
	res := ValidateProjectFormAt(f, testNow)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "startDate", res.Errors[0].Field)
	assert.Equal(t, "endDate", res.Errors[1].Field)
}

func TestValidateContribution(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		code    Code
		message string
	}{
		{"empty", "", RequiredField, "Please enter an amount in SOL"},
		{"whitespace", "   ", RequiredField, "Please enter an amount in SOL"},
		{"letters", "abc", FormatInvalid, "Please enter a valid number"},
		{"trailing garbage", "12abc", FormatInvalid, "Please enter a valid number"},
		{"nan", "NaN", FormatInvalid, "Please enter a valid number"},
		{"zero", "0", BelowMinimum, "Minimum contribution is 0.1 SOL"},
		{"negative", "-5", BelowMinimum, "Minimum contribution is 0.1 SOL"},
		{"just below", "0.09", BelowMinimum, "Minimum contribution is 0.1 SOL"},
		{"above", "1000.01", AboveMaximum, "Maximum contribution is 1000 SOL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateContribution(tt.amount, model.CurrencySOL, DefaultMinContribution, DefaultMaxContribution)
			assert.False(t, res.Valid)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, "amount", res.Errors[0].Field)
			assert.Equal(t, tt.code, res.Errors[0].Code)
			assert.Equal(t, tt.message, res.FirstMessage())
		})
	}
}

func TestValidateContribution_InRange(t *testing.T) {
	for _, amount := range []string{"0.1", "1", " 50 ", "999.99", "1000", "1e2"} {
		res := ValidateContribution(amount, model.CurrencyUSDC, DefaultMinContribution, DefaultMaxContribution)
		assert.True(t, res.Valid, "amount %q", amount)
		assert.Empty(t, res.Errors)
	}
}

func TestValidateContribution_CurrencyInMessage(t *testing.T) {
	res := ValidateContribution("", model.CurrencyUSDC, 1, 10)
	assert.Equal(t, "Please enter an amount in USDC", res.FirstMessage())

	res = ValidateContribution("11", model.CurrencyUSDC, 1, 10)
	assert.Equal(t, "Maximum contribution is 10 USDC", res.FirstMessage())
}

func TestValidateStakingTiers(t *testing.T) {
	maxStake := 500.0
	tiers := []model.StakingTier{
		{TierID: "1", LockPeriodDays: 30, RewardRate: 15, MinStake: 100},
		{TierID: "2", LockPeriodDays: 0, RewardRate: -1, MinStake: 1000, MaxStake: &maxStake},
	}

	res := ValidateStakingTiers(tiers)
	require.False(t, res.Valid)
	assert.True(t, res.Has("stakingTiers[1].lockPeriodDays", RangeInvalid))
	assert.True(t, res.Has("stakingTiers[1].rewardRate", RangeInvalid))
	assert.True(t, res.Has("stakingTiers[1].maxStake", OrderInvalid))
	assert.Len(t, res.Errors, 3)
}

func TestResultErr(t *testing.T) {
	assert.NoError(t, ValidateStakingTiers(nil).Err())

	res := ValidateContribution("", model.CurrencySOL, 1, 2)
	err := res.Err()
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, res, verr.Result)
	assert.Contains(t, err.Error(), "amount: Please enter an amount in SOL")
}

func TestResultMerge(t *testing.T) {
	a := ValidateContribution("", model.CurrencySOL, 1, 2)
	b := ValidateStakingTiers([]model.StakingTier{{LockPeriodDays: 0}})
	merged := a.Merge(b)
	assert.False(t, merged.Valid)
	assert.Len(t, merged.Errors, 2)
	assert.Equal(t, "amount", merged.Errors[0].Field)

	ok := ValidateStakingTiers(nil).Merge(ValidateStakingTiers(nil))
	assert.True(t, ok.Valid)
}
