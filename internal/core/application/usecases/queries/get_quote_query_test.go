package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dormAddress(t *testing.T) kernel.Address {
	t.Helper()
	point, err := kernel.NewGeoPoint(40.7128, -74.0060)
	require.NoError(t, err)
	address, err := kernel.NewAddress(point, "12 Dorm Lane")
	require.NoError(t, err)
	return address
}

func TestNewGetQuoteQuery_Valid(t *testing.T) {
	query, err := queries.NewGetQuoteQuery(dormAddress(t))
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "12 Dorm Lane", query.StudentAddress().Text())
}

func TestNewGetQuoteQuery_RejectsZeroValueAddress(t *testing.T) {
	_, err := queries.NewGetQuoteQuery(kernel.Address{})
	require.Error(t, err)
}

func TestGetQuoteQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetQuoteQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetQuoteQueryIsNotConstructed)
}
