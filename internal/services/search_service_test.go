package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/therisers/backoffice/internal/models"
	"github.com/therisers/backoffice/internal/scope"
)

func TestSearch_ManagerWithoutBranch(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewSearchService(db, NewBranchService(db, nil))

	mock.ExpectQuery(`SELECT \* FROM "branches"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "manager_id"}))

	_, err := svc.Search(scope.Identity{UserID: uuid.New(), Role: models.RoleManager}, "ali")
	assert.ErrorIs(t, err, ErrManagerNoBranch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBranchResult(t *testing.T) {
	b := models.Branch{ID: uuid.New(), Name: "Lahore Office", City: "Lahore"}

	r := branchResult(b)
	assert.Equal(t, "Branch", r.Type)
	assert.Equal(t, "Lahore Office", r.Name)
	assert.Equal(t, "N/A", r.PhoneNumber, "missing phone falls back to N/A")
	assert.Equal(t, "/admin/branches/"+b.ID.String(), r.Link)
}

func TestManagerResult(t *testing.T) {
	m := models.User{
		FirstName:   "Sara",
		LastName:    "Ahmed",
		PhoneNumber: "0300-1234567",
		Role:        models.RoleManager,
	}

	r := managerResult(m)
	assert.Equal(t, "Manager", r.Type)
	assert.Equal(t, "Sara Ahmed", r.Name)
	assert.Equal(t, "0300-1234567", r.Phone)
}

func TestApplicantResult(t *testing.T) {
	a := models.Applicant{
		ID:      uuid.New(),
		Name:    "Bilal Hussain",
		Country: "Germany",
	}

	r := applicantResult(a, "/search/applicant/"+a.ID.String())
	assert.Equal(t, "Applicant | Bilal Hussain", r.Type)
	assert.Equal(t, "Germany", r.Country)
	assert.Equal(t, "N/A", r.Phone)
	assert.Equal(t, "N/A", r.Qualification)
	assert.Equal(t, "/search/applicant/"+a.ID.String(), r.Link)
}
