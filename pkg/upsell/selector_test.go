package upsell

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revenue-forecast/pkg/catalog"
	ierr "revenue-forecast/pkg/errors"
	"revenue-forecast/pkg/models"
)

// scripted replays fixed draws.
type scripted struct {
	floats []float64
	ints   []int
}

func (s *scripted) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scripted) IntN(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(models.BusinessModel{
		Name: "test",
		Plans: []models.Plan{
			{Name: "basic", Price: 30, Billing: models.BillingRecurring, Probability: 0.6},
			{Name: "pro", Price: 90, Billing: models.BillingRecurring, Probability: 0.3},
			{Name: "lifetime", Price: 900, Billing: models.BillingOneTime, Probability: 0.1},
		},
		Addons: []models.AddonPackage{
			{Name: "care", Price: 200, Billing: models.BillingRecurring, DisplayName: "Care", Probability: 0.5, MaxQuantity: 1},
			{Name: "pages", Price: 100, Billing: models.BillingOneTime, DisplayName: "Pages", Probability: 0.5, MaxQuantity: 3},
			{Name: "seo_a", Price: 400, Billing: models.BillingRecurring, DisplayName: "SEO A", Probability: 0.5, MaxQuantity: 1},
			{Name: "seo_b", Price: 800, Billing: models.BillingRecurring, DisplayName: "SEO B", Probability: 0.5, MaxQuantity: 1},
		},
		ExclusiveGroups: []models.ExclusiveGroup{{Name: "seo", Prefix: "seo_"}},
	})
	require.NoError(t, err)
	return c
}

func TestChoosePlan(t *testing.T) {
	cat := testCatalog(t)
	tests := []struct {
		draw float64
		want string
	}{
		{0.0, "basic"},
		{0.59, "basic"},
		{0.6, "pro"},
		{0.89, "pro"},
		{0.95, "lifetime"},
	}
	for _, tt := range tests {
		got := ChoosePlan(cat, &scripted{floats: []float64{tt.draw}})
		assert.Equal(t, tt.want, got.Name, "draw %v", tt.draw)
	}
}

func TestChoosePlan_FallsBackToFirstPlan(t *testing.T) {
	cat, err := catalog.New(models.BusinessModel{
		Plans: []models.Plan{
			{Name: "a", Probability: 0.5},
			{Name: "b", Probability: 0.495},
		},
	})
	require.NoError(t, err)

	got := ChoosePlan(cat, &scripted{floats: []float64{0.999}})
	assert.Equal(t, "a", got.Name)
}

func TestSelectBundle_ScriptedDraws(t *testing.T) {
	cat := testCatalog(t)
	src := &scripted{
		// care, pages x3, seo_a, seo_b
		floats: []float64{0.1, 0.2, 0.9, 0.3, 0.7, 0.8},
	}
	b := SelectBundle(cat, src)

	assert.Equal(t, 1, b.Quantity("care"))
	assert.Equal(t, 2, b.Quantity("pages"))
	assert.Equal(t, 0, b.Quantity("seo_a"))
	assert.Equal(t, 0, b.Quantity("seo_b"))
	assert.Equal(t, map[string]int{"care": 1, "pages": 2}, b.Quantities())
}

func TestSelectBundle_ExclusiveGroupKeepsOne(t *testing.T) {
	cat := testCatalog(t)
	src := &scripted{
		floats: []float64{0.9, 0.9, 0.9, 0.9, 0.1, 0.1},
		ints:   []int{1},
	}
	b := SelectBundle(cat, src)

	assert.Equal(t, 0, b.Quantity("seo_a"))
	assert.Equal(t, 1, b.Quantity("seo_b"))
	assert.Empty(t, src.ints)
}

func TestSelectBundle_SingleGroupMemberNeedsNoResolution(t *testing.T) {
	cat := testCatalog(t)
	src := &scripted{floats: []float64{0.9, 0.9, 0.9, 0.9, 0.1, 0.9}}
	b := SelectBundle(cat, src)

	assert.Equal(t, 1, b.Quantity("seo_a"))
	assert.Equal(t, 0, b.Quantity("seo_b"))
}

func TestSelectBundle_Invariants(t *testing.T) {
	cat := testCatalog(t)
	src := rand.New(rand.NewPCG(42, 7))

	for i := 0; i < 5000; i++ {
		b := SelectBundle(cat, src)
		for _, a := range cat.Addons() {
			q := b.Quantity(a.Name)
			assert.GreaterOrEqual(t, q, 0)
			assert.LessOrEqual(t, q, a.MaxQuantity)
		}
		active := 0
		for _, name := range cat.Groups()[0].Members {
			if b.Quantity(name) > 0 {
				active++
			}
		}
		require.LessOrEqual(t, active, 1)
	}
}

func TestSelectBundle_AlwaysAdoptsAtProbabilityOne(t *testing.T) {
	cat, err := catalog.New(models.BusinessModel{
		Plans:  []models.Plan{{Name: "p", Probability: 1}},
		Addons: []models.AddonPackage{{Name: "pages", Probability: 1, MaxQuantity: 5}, {Name: "never", Probability: 0}},
	})
	require.NoError(t, err)

	b := SelectBundle(cat, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, 5, b.Quantity("pages"))
	assert.Equal(t, 0, b.Quantity("never"))
}

func TestBundleTotalsAndDescription(t *testing.T) {
	cat := testCatalog(t)
	b, err := NewBundle(cat, map[string]int{"care": 1, "pages": 2})
	require.NoError(t, err)

	assert.Equal(t, 200.0, b.Total(cat, models.BillingRecurring))
	assert.Equal(t, 200.0, b.Total(cat, models.BillingOneTime))
	assert.Equal(t, "Care x1 ($200.00/mo), Pages x2 ($200.00)", b.Describe(cat))

	empty, err := NewBundle(cat, nil)
	require.NoError(t, err)
	assert.Equal(t, "No additional services", empty.Describe(cat))
}

func TestNewBundle_RejectsInvalidQuantities(t *testing.T) {
	cat := testCatalog(t)

	_, err := NewBundle(cat, map[string]int{"care": 2})
	assert.True(t, ierr.IsValidation(err))

	_, err = NewBundle(cat, map[string]int{"pages": 4})
	assert.True(t, ierr.IsValidation(err))

	_, err = NewBundle(cat, map[string]int{"ghost": 1})
	assert.True(t, ierr.IsValidation(err))
}
