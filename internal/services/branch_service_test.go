package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/models"
	"github.com/therisers/backoffice/internal/scope"
)

func branchRow(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "city", "image"}).
		AddRow(id.String(), "Lahore Office", "Lahore", "https://bucket/branch.jpg")
}

func TestBranchCreate_RequiresNameAndCity(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewBranchService(db, nil)

	_, err := svc.Create(context.Background(), &dto.CreateBranchRequest{City: "Lahore"}, nil, "", "")
	assert.ErrorIs(t, err, ErrBranchFieldsNeeded)

	_, err = svc.Create(context.Background(), &dto.CreateBranchRequest{Name: "Lahore Office"}, nil, "", "")
	assert.ErrorIs(t, err, ErrBranchFieldsNeeded)
}

func TestBranchDelete_RestrictedWhileApplicantsExist(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewBranchService(db, nil)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "branches"`).WillReturnRows(branchRow(id))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "applicants"`).WillReturnRows(
		sqlmock.NewRows([]string{"count"}).AddRow(3))

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrBranchHasApplicants)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignManager_RejectsManagerOfAnotherBranch(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewBranchService(db, nil)
	branchID := uuid.New()
	managerID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "branches"`).WillReturnRows(branchRow(branchID))
	// The same manager already runs a different branch.
	mock.ExpectQuery(`SELECT \* FROM "branches"`).WillReturnRows(branchRow(uuid.New()))

	err := svc.AssignManager(branchID, managerID)
	assert.ErrorIs(t, err, ErrManagerTaken)
}

func TestResolveBranch_ManagerUsesOwnBranch(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewApplicantService(db, nil, NewBranchService(db, nil))
	manager := scope.Identity{UserID: uuid.New(), Role: models.RoleManager}
	branchID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "branches"`).WillReturnRows(branchRow(branchID))

	got, err := svc.ResolveBranch(manager, "")
	require.NoError(t, err)
	assert.Equal(t, branchID, got)
}

func TestResolveBranch_ManagerWithoutBranch(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewApplicantService(db, nil, NewBranchService(db, nil))
	manager := scope.Identity{UserID: uuid.New(), Role: models.RoleManager}

	mock.ExpectQuery(`SELECT \* FROM "branches"`).WillReturnRows(
		sqlmock.NewRows([]string{"id"}))

	_, err := svc.ResolveBranch(manager, "")
	assert.ErrorIs(t, err, ErrManagerNoBranch)
}
