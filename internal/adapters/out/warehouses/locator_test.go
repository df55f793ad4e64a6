package warehouses_test

import (
	"testing"

	"dispatch/internal/adapters/out/warehouses"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func address(t *testing.T, lat, lon float64, text string) kernel.Address {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	a, err := kernel.NewAddress(point, text)
	require.NoError(t, err)
	return a
}

func TestStaticLocator_Nearest(t *testing.T) {
	downtown := address(t, 40.7128, -74.0060, "Downtown Warehouse")
	uptown := address(t, 40.8116, -73.9465, "Uptown Warehouse")

	locator, err := warehouses.NewStaticLocator([]kernel.Address{downtown, uptown})
	require.NoError(t, err)

	nearDowntown, err := kernel.NewGeoPoint(40.7000, -74.0100)
	require.NoError(t, err)
	got, err := locator.Nearest(t.Context(), nearDowntown)
	require.NoError(t, err)
	assert.Equal(t, "Downtown Warehouse", got.Text())

	nearUptown, err := kernel.NewGeoPoint(40.8200, -73.9500)
	require.NoError(t, err)
	got, err = locator.Nearest(t.Context(), nearUptown)
	require.NoError(t, err)
	assert.Equal(t, "Uptown Warehouse", got.Text())
}

func TestNewStaticLocator_Rejections(t *testing.T) {
	_, err := warehouses.NewStaticLocator(nil)
	require.Error(t, err, "no sites")

	_, err = warehouses.NewStaticLocator([]kernel.Address{{}})
	require.Error(t, err, "unconstructed site")
}

func TestStaticLocator_Nearest_RejectsZeroValuePoint(t *testing.T) {
	locator, err := warehouses.NewStaticLocator([]kernel.Address{
		address(t, 40.7128, -74.0060, "Downtown Warehouse"),
	})
	require.NoError(t, err)

	_, err = locator.Nearest(t.Context(), kernel.GeoPoint{})
	require.Error(t, err)
}
