package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// An empty database must yield zeroes and empty groups, never nil
// slices, so the dashboard always receives JSON arrays.
func TestStatsForAdmin_EmptyDatabase(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewStatsService(db, NewBranchService(db, nil))

	count := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"count"}).AddRow(0) }
	groups := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"key", "count"}) }
	sums := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"key", "total"}) }

	mock.ExpectQuery(`SELECT count\(\*\) FROM "branches"`).WillReturnRows(count())
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).WillReturnRows(count())
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "applicants"`).WillReturnRows(count())
	mock.ExpectQuery(`SELECT country AS key`).WillReturnRows(groups())
	mock.ExpectQuery(`SELECT visa_type AS key`).WillReturnRows(groups())
	mock.ExpectQuery(`SELECT agreed_currency AS key`).WillReturnRows(sums())

	resp, err := svc.ForAdmin()
	require.NoError(t, err)

	assert.Zero(t, resp.TotalBranches)
	assert.Zero(t, resp.TotalEmployees)
	assert.Zero(t, resp.TotalRevenue)
	assert.Zero(t, resp.TotalApplicants)
	assert.NotNil(t, resp.ApplicantsByCountry)
	assert.NotNil(t, resp.ApplicantsByVisaType)
	assert.NotNil(t, resp.PaymentsByCurrency)
	assert.Empty(t, resp.ApplicantsByCountry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevenuePerBranchPerCurrency(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewStatsService(db, NewBranchService(db, nil))

	mock.ExpectQuery(`SELECT branches.name AS branch_name`).WillReturnRows(
		sqlmock.NewRows([]string{"branch_name", "currency", "revenue"}).
			AddRow("Lahore Office", "PKR", 150000.0).
			AddRow("Lahore Office", "USD", 1200.0))

	rows, err := svc.RevenuePerBranchPerCurrency()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Lahore Office", rows[0].BranchName)
	assert.Equal(t, "PKR", rows[0].Currency)
	assert.Equal(t, 150000.0, rows[0].Revenue)
}
