package view

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/abgdnv/filecommerce/internal/product/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductService serves a fixed product list to the pager.
type mockProductService struct {
	products []service.ProductDto
	error    error
}

func (m *mockProductService) FindAll(_ context.Context, _ int) ([]service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

func (m *mockProductService) FindByID(_ context.Context, _ string) (*service.ProductDto, error) {
	return nil, nil
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductCreateDto) (*service.ProductDto, error) {
	return nil, nil
}

func (m *mockProductService) Update(_ context.Context, _ string, _ service.ProductUpdateDto) (*service.ProductDto, error) {
	return nil, nil
}

func (m *mockProductService) DeleteByID(_ context.Context, _ string) error {
	return nil
}

func fixedProducts(n int) []service.ProductDto {
	products := make([]service.ProductDto, n)
	for i := range products {
		products[i] = service.ProductDto{
			ID:       fmt.Sprintf("%05d", 10000+i),
			Title:    fmt.Sprintf("Product %d", i),
			Category: "misc",
			Price:    float64(i + 1),
		}
	}
	return products
}

func Test_Pager_PageMetadata(t *testing.T) {
	testCases := []struct {
		name            string
		total           int
		query           PageQuery
		expectedCount   int
		expectedCurrent int
		expectedTotal   int
		expectedHasPrev bool
		expectedHasNext bool
	}{
		{
			name:            "first of three pages",
			total:           25,
			query:           PageQuery{Page: 1, Limit: 10},
			expectedCount:   10,
			expectedCurrent: 1,
			expectedTotal:   3,
			expectedHasPrev: false,
			expectedHasNext: true,
		},
		{
			name:            "middle page",
			total:           25,
			query:           PageQuery{Page: 2, Limit: 10},
			expectedCount:   10,
			expectedCurrent: 2,
			expectedTotal:   3,
			expectedHasPrev: true,
			expectedHasNext: true,
		},
		{
			name:            "last page is short",
			total:           25,
			query:           PageQuery{Page: 3, Limit: 10},
			expectedCount:   5,
			expectedCurrent: 3,
			expectedTotal:   3,
			expectedHasPrev: true,
			expectedHasNext: false,
		},
		{
			name:            "out-of-range page clamps to last",
			total:           25,
			query:           PageQuery{Page: 9, Limit: 10},
			expectedCount:   5,
			expectedCurrent: 3,
			expectedTotal:   3,
			expectedHasPrev: true,
			expectedHasNext: false,
		},
		{
			name:            "empty collection still has one page",
			total:           0,
			query:           PageQuery{Page: 1, Limit: 10},
			expectedCount:   0,
			expectedCurrent: 1,
			expectedTotal:   1,
			expectedHasPrev: false,
			expectedHasNext: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			pager := NewPager(&mockProductService{products: fixedProducts(tc.total)})
			// when
			page, err := pager.Page(context.Background(), tc.query)
			// then
			require.NoError(t, err)
			assert.Len(t, page.Products, tc.expectedCount)
			assert.Equal(t, tc.expectedCurrent, page.CurrentPage)
			assert.Equal(t, tc.expectedTotal, page.TotalPages)
			assert.Equal(t, tc.expectedHasPrev, page.HasPrevPage)
			assert.Equal(t, tc.expectedHasNext, page.HasNextPage)
			if tc.expectedHasPrev {
				require.NotNil(t, page.PrevPage)
				assert.Equal(t, tc.expectedCurrent-1, *page.PrevPage)
			} else {
				assert.Nil(t, page.PrevPage)
			}
			if tc.expectedHasNext {
				require.NotNil(t, page.NextPage)
				assert.Equal(t, tc.expectedCurrent+1, *page.NextPage)
			} else {
				assert.Nil(t, page.NextPage)
			}
		})
	}
}

func Test_Pager_SortsByPrice(t *testing.T) {
	// given
	products := []service.ProductDto{
		{ID: "00001", Title: "mid", Price: 20},
		{ID: "00002", Title: "cheap", Price: 10},
		{ID: "00003", Title: "dear", Price: 30},
	}
	pager := NewPager(&mockProductService{products: products})

	testCases := []struct {
		name     string
		sort     string
		expected []string
	}{
		{name: "ascending", sort: "asc", expected: []string{"cheap", "mid", "dear"}},
		{name: "descending", sort: "desc", expected: []string{"dear", "mid", "cheap"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			page, err := pager.Page(context.Background(), PageQuery{Page: 1, Limit: 10, Sort: tc.sort})
			// then
			require.NoError(t, err)
			got := make([]string, len(page.Products))
			for i, p := range page.Products {
				got[i] = p.Title
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func Test_Pager_FiltersByQuery(t *testing.T) {
	// given
	products := []service.ProductDto{
		{ID: "00001", Title: "Red keyboard", Category: "peripherals"},
		{ID: "00002", Title: "Desk lamp", Category: "lighting"},
		{ID: "00003", Title: "Blue keyboard", Category: "peripherals"},
	}
	pager := NewPager(&mockProductService{products: products})
	// when
	page, err := pager.Page(context.Background(), PageQuery{Page: 1, Limit: 10, Query: "KEYBOARD"})
	// then
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "Red keyboard", page.Products[0].Title)
	assert.Equal(t, "Blue keyboard", page.Products[1].Title)
}

func Test_Pager_ServiceError(t *testing.T) {
	// given
	pager := NewPager(&mockProductService{error: errors.New("boom")})
	// when
	_, err := pager.Page(context.Background(), PageQuery{Page: 1, Limit: 10})
	// then
	assert.Error(t, err)
}
