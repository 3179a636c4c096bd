package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/blues/launchpad/internal/model"
	"github.com/blues/launchpad/internal/txhash"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, 1, 16, 14, 30, 0, 0, time.UTC)

func instantOptions() MemoryOptions {
	return MemoryOptions{
		Hashes: txhash.GeneratorFunc(func(projectID int64, wallet string) string { return "0xfeed" }),
		Now:    func() time.Time { return fixedNow },
	}
}

func testDataset() Dataset {
	return Dataset{
		Projects: []model.Project{
			{ID: 1, ProjectName: "DeFi Yield Optimizer", TokenSymbol: "YOT", FundingGoal: 500, CurrentFunds: 100, Status: model.ProjectStatusActive,
				TokenomicsDetails: model.TokenomicsDetails{TotalSupply: 1e7, Decimals: 18, StakingTiers: []model.StakingTier{{TierID: "1", LockPeriodDays: 30, RewardRate: 15, MinStake: 1000}}}},
			{ID: 2, ProjectName: "NFT Gaming Platform", TokenSymbol: "GAME", FundingGoal: 300, CurrentFunds: 450, Status: model.ProjectStatusCompleted},
			{ID: 3, ProjectName: "Green Energy DAO", TokenSymbol: "GREEN", FundingGoal: 1000, CurrentFunds: 125, Status: model.ProjectStatusActive},
			{ID: 4, ProjectName: "Social Media Rewards", TokenSymbol: "SRT", FundingGoal: 200, CurrentFunds: 75, Status: model.ProjectStatusFailed},
		},
		Investors: []model.Investor{
			{ID: 1, ProjectID: 1, WalletAddress: "0xaaa", ContributionAmount: 50, ContributionCurrency: model.CurrencySOL},
			{ID: 2, ProjectID: 3, WalletAddress: "0xbbb", ContributionAmount: 10, ContributionCurrency: model.CurrencyUSDC},
			{ID: 3, ProjectID: 1, WalletAddress: "0xccc", ContributionAmount: 25.5, ContributionCurrency: model.CurrencySOL},
		},
	}
}

func testDraft() model.ProjectDraft {
	return model.ProjectDraft{
		ProjectName:  "Launch",
		TokenName:    "Launch Token",
		TokenSymbol:  "LCH",
		FundingGoal:  750,
		StartDate:    fixedNow.Add(24 * time.Hour),
		EndDate:      fixedNow.Add(30 * 24 * time.Hour),
		OwnerAddress: "0xowner",
		TokenomicsDetails: model.TokenomicsDetails{
			TotalSupply:  1000,
			Decimals:     9,
			StakingTiers: []model.StakingTier{{TierID: "1", LockPeriodDays: 7, RewardRate: 5}},
		},
	}
}

func TestMemoryStore_ContributeIncrementsFunds(t *testing.T) {
	s := NewMemoryStore(instantOptions(), testDataset())
	ctx := context.Background()

	before, err := s.GetInvestorsByProject(ctx, 1)
	require.NoError(t, err)

	inv, err := s.Contribute(ctx, 1, 50, model.CurrencySOL, "0xwallet")
	require.NoError(t, err)
	assert.Equal(t, int64(4), inv.ID)
	assert.Equal(t, 50.0, inv.ContributionAmount)
	assert.Equal(t, model.CurrencySOL, inv.ContributionCurrency)
	assert.Equal(t, "0xfeed", inv.TransactionHash)
	assert.Equal(t, fixedNow, inv.Timestamp)

	p, ok, err := s.GetProjectByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 150.0, p.CurrentFunds)

	after, err := s.GetInvestorsByProject(ctx, 1)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	last := after[len(after)-1]
	assert.Equal(t, 50.0, last.ContributionAmount)
	assert.Equal(t, model.CurrencySOL, last.ContributionCurrency)
	assert.Equal(t, "0xwallet", last.WalletAddress)
}

func TestMemoryStore_ContributeUnknownProject(t *testing.T) {
	s := NewMemoryStore(instantOptions(), testDataset())
	ctx := context.Background()

	_, err := s.Contribute(ctx, 99, 10, model.CurrencyUSDC, "0xwallet")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	investors, err := s.GetInvestorsByProject(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, investors)

	// 其他项目不受影响
	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(testDataset().Projects[0].CurrentFunds, projects[0].CurrentFunds); diff != "" {
		t.Errorf("funds changed (-want +got):\n%s", diff)
	}
}

func TestMemoryStore_CreateProject(t *testing.T) {
	s := NewMemoryStore(instantOptions(), testDataset())
	ctx := context.Background()

	p, err := s.CreateProject(ctx, testDraft())
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
	assert.Equal(t, model.ProjectStatusPending, p.Status)
	assert.Equal(t, 0.0, p.CurrentFunds)
	assert.Equal(t, 750.0, p.FundingGoal)
	require.Len(t, p.TokenomicsDetails.StakingTiers, 1)
	assert.Equal(t, int64(5), p.TokenomicsDetails.StakingTiers[0].ProjectID)

	// 名称与代号重复是允许的
	dup, err := s.CreateProject(ctx, testDraft())
	require.NoError(t, err)
	assert.Equal(t, int64(6), dup.ID)

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 6)
	assert.Equal(t, int64(5), projects[4].ID)
	assert.Equal(t, int64(6), projects[5].ID)
}

func TestMemoryStore_CreateProjectIgnoresDraftFunds(t *testing.T) {
	s := NewMemoryStore(instantOptions(), Dataset{})
	for _, goal := range []float64{0, 1, 1e6} {
		d := testDraft()
		d.FundingGoal = goal
		p, err := s.CreateProject(context.Background(), d)
		require.NoError(t, err)
		assert.Equal(t, model.ProjectStatusPending, p.Status)
		assert.Zero(t, p.CurrentFunds)
	}
}

func TestMemoryStore_GetProjectsByStatus(t *testing.T) {
	s := NewMemoryStore(instantOptions(), testDataset())

	active, err := s.GetProjectsByStatus(context.Background(), model.ProjectStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, int64(1), active[0].ID)
	assert.Equal(t, int64(3), active[1].ID)

	refunded, err := s.GetProjectsByStatus(context.Background(), model.ProjectStatusRefunded)
	require.NoError(t, err)
	assert.NotNil(t, refunded)
	assert.Empty(t, refunded)
}

func TestMemoryStore_GetProjectByIDAbsent(t *testing.T) {
	s := NewMemoryStore(instantOptions(), testDataset())
	_, ok, err := s.GetProjectByID(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_GetInvestorsByProjectOrder(t *testing.T) {
	s := NewMemoryStore(instantOptions(), testDataset())
	investors, err := s.GetInvestorsByProject(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, investors, 2)
	assert.Equal(t, int64(1), investors[0].ID)
	assert.Equal(t, int64(3), investors[1].ID)
}

func TestMemoryStore_ListProjectsSnapshot(t *testing.T) {
	s := NewMemoryStore(instantOptions(), testDataset())
	ctx := context.Background()

	first, err := s.ListProjects(ctx)
	require.NoError(t, err)
	second, err := s.ListProjects(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("snapshots differ (-first +second):\n%s", diff)
	}

	// 修改快照不影响存储
	first[0].CurrentFunds = 9999
	first[0].TokenomicsDetails.StakingTiers[0].RewardRate = 99
	third, err := s.ListProjects(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(second, third); diff != "" {
		t.Fatalf("store aliased snapshot (-want +got):\n%s", diff)
	}
}

func TestMemoryStore_InitialDataNotAliased(t *testing.T) {
	data := testDataset()
	s := NewMemoryStore(instantOptions(), data)
	data.Projects[0].TokenomicsDetails.StakingTiers[0].MinStake = -1

	p, _, err := s.GetProjectByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, p.TokenomicsDetails.StakingTiers[0].MinStake)
	assert.Equal(t, int64(1), p.TokenomicsDetails.StakingTiers[0].ProjectID)
}

func TestMemoryStore_Delays(t *testing.T) {
	opts := instantOptions()
	opts.CreateDelay = 30 * time.Millisecond
	opts.ContributeDelay = 50 * time.Millisecond
	s := NewMemoryStore(opts, testDataset())
	ctx := context.Background()

	start := time.Now()
	_, err := s.CreateProject(ctx, testDraft())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	start = time.Now()
	_, err = s.Contribute(ctx, 1, 1, model.CurrencySOL, "0xwallet")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestMemoryStore_CancelledContributeLeavesStateUntouched(t *testing.T) {
	opts := instantOptions()
	opts.ContributeDelay = time.Hour
	s := NewMemoryStore(opts, testDataset())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Contribute(ctx, 1, 50, model.CurrencySOL, "0xwallet")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	p, _, err := s.GetProjectByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.CurrentFunds)

	investors, err := s.GetInvestorsByProject(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, investors, 2)
}

func TestMemoryStore_ConcurrentContributions(t *testing.T) {
	opts := instantOptions()
	opts.ContributeDelay = 5 * time.Millisecond
	s := NewMemoryStore(opts, testDataset())
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Contribute(ctx, 3, 2, model.CurrencySOL, "0xwallet")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, _, err := s.GetProjectByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 125.0+2*n, p.CurrentFunds)

	investors, err := s.GetInvestorsByProject(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, investors, n+1)

	seen := make(map[int64]bool)
	for _, inv := range investors {
		assert.False(t, seen[inv.ID], "duplicate investor id %d", inv.ID)
		seen[inv.ID] = true
	}
}

func TestMemoryStore_Load(t *testing.T) {
	opts := instantOptions()
	opts.LoadDelay = 200 * time.Millisecond
	s := NewMemoryStore(opts, Dataset{})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- s.Load(ctx, testDataset()) }()

	require.Eventually(t, s.Loading, time.Second, time.Millisecond)
	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	require.NoError(t, <-done)
	assert.False(t, s.Loading())

	projects, err = s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 4)
}

func TestMemoryStore_LoadCancelled(t *testing.T) {
	opts := instantOptions()
	opts.LoadDelay = time.Hour
	s := NewMemoryStore(opts, Dataset{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Load(ctx, testDataset())
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.Loading())
}

func TestMemoryStore_UpdateStatus(t *testing.T) {
	s := NewMemoryStore(instantOptions(), testDataset())
	ctx := context.Background()

	require.NoError(t, s.UpdateStatus(ctx, 1, model.ProjectStatusCompleted))
	p, _, err := s.GetProjectByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusCompleted, p.Status)

	assert.ErrorIs(t, s.UpdateStatus(ctx, 99, model.ProjectStatusActive), ErrProjectNotFound)
}

func TestMemoryStore_ContributeRechecksStatusAfterDelay(t *testing.T) {
	opts := instantOptions()
	opts.ContributeDelay = 200 * time.Millisecond
	s := NewMemoryStore(opts, Dataset{
		Projects: []model.Project{{ID: 1, FundingGoal: 100, CurrentFunds: 50, Status: model.ProjectStatusActive}},
	})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := s.Contribute(ctx, 1, 60, model.CurrencySOL, "0xwallet", RequireStatus(model.ProjectStatusActive))
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.UpdateStatus(ctx, 1, model.ProjectStatusFailed))

	assert.ErrorIs(t, <-done, ErrProjectNotActive)

	p, _, err := s.GetProjectByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusFailed, p.Status)
	assert.Equal(t, 50.0, p.CurrentFunds)

	investors, err := s.GetInvestorsByProject(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, investors)
}

func TestMemoryStore_ContributeWithoutStatusCondition(t *testing.T) {
	s := NewMemoryStore(instantOptions(), testDataset())

	_, err := s.Contribute(context.Background(), 2, 10, model.CurrencySOL, "0xwallet")
	require.NoError(t, err)

	_, err = s.Contribute(context.Background(), 2, 10, model.CurrencySOL, "0xwallet", RequireStatus(model.ProjectStatusActive))
	assert.ErrorIs(t, err, ErrProjectNotActive)
}

func TestMemoryStore_WritesRejectedWhileLoading(t *testing.T) {
	opts := instantOptions()
	opts.LoadDelay = 200 * time.Millisecond
	s := NewMemoryStore(opts, Dataset{})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- s.Load(ctx, testDataset()) }()
	require.Eventually(t, s.Loading, time.Second, time.Millisecond)

	_, err := s.CreateProject(ctx, testDraft())
	assert.ErrorIs(t, err, ErrLoading)
	_, err = s.Contribute(ctx, 1, 5, model.CurrencySOL, "0xwallet")
	assert.ErrorIs(t, err, ErrLoading)

	require.NoError(t, <-done)

	p, err := s.CreateProject(ctx, testDraft())
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 5)
}

func TestMemoryStore_CreateProjectCopiesSocialLinks(t *testing.T) {
	s := NewMemoryStore(instantOptions(), testDataset())
	ctx := context.Background()

	draft := testDraft()
	draft.SocialLinks = &model.SocialLinks{Twitter: "https://twitter.com/launch"}
	p, err := s.CreateProject(ctx, draft)
	require.NoError(t, err)

	draft.SocialLinks.Twitter = "https://twitter.com/changed"

	got, _, err := s.GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SocialLinks)
	assert.Equal(t, "https://twitter.com/launch", got.SocialLinks.Twitter)
}
