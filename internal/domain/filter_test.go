package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"service-courier-panel/internal/domain"
)

func TestOrderFilter_Normalize(t *testing.T) {
	t.Parallel()

	f := domain.OrderFilter{CourierID: "c1", Search: "  jane  "}.Normalize()
	require.Equal(t, domain.DefaultPage, f.Page)
	require.Equal(t, domain.DefaultLimit, f.Limit)
	require.Equal(t, "jane", f.Search)

	f = domain.OrderFilter{Page: 3, Limit: 25}.Normalize()
	require.Equal(t, 3, f.Page)
	require.Equal(t, 25, f.Limit)
}

func TestOrderFilter_Offset(t *testing.T) {
	t.Parallel()

	f := domain.OrderFilter{Page: 1, Limit: 10}
	require.Equal(t, 0, f.Offset())

	f = domain.OrderFilter{Page: 4, Limit: 10}
	require.Equal(t, 30, f.Offset())
}

func TestOrderFilter_Pages(t *testing.T) {
	t.Parallel()

	f := domain.OrderFilter{Page: 1, Limit: 10}
	require.EqualValues(t, 0, f.Pages(0))
	require.EqualValues(t, 1, f.Pages(1))
	require.EqualValues(t, 1, f.Pages(10))
	require.EqualValues(t, 2, f.Pages(11))
	require.EqualValues(t, 5, f.Pages(42))
}
