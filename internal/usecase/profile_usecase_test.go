package usecase_test

import (
	"context"
	"testing"

	"pizzeria/internal/domain/model"
	repo "pizzeria/internal/repository"
	"pizzeria/internal/usecase"
	"pizzeria/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) FindByUsername(ctx context.Context, username string) (*model.Customer, error) {
	args := m.Called(ctx, username)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func TestProfile_OtherCustomerIsForbidden(t *testing.T) {
	customers := new(MockCustomerRepository)
	uc := usecase.NewProfileUsecase(customers, nil, validator.NewProfileValidator())

	_, err := uc.Get(context.Background(), 1, 2)
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	_, err = uc.Update(context.Background(), 1, 2, usecase.ProfileInput{})
	assert.ErrorIs(t, err, usecase.ErrForbidden)

	customers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProfile_Update(t *testing.T) {
	customers := new(MockCustomerRepository)
	customers.On("FindByID", mock.Anything, int64(3)).
		Return(&model.Customer{ID: 3, Username: "anna", IsActive: true}, nil)
	customers.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Customer) bool {
		return c.FirstName == "Anna" && c.PhoneNumber != nil && *c.PhoneNumber == "+12125552368"
	})).Return(nil)

	uc := usecase.NewProfileUsecase(customers, nil, validator.NewProfileValidator())

	out, err := uc.Update(context.Background(), 3, 3, usecase.ProfileInput{
		FirstName:   "Anna",
		LastName:    "Lee",
		PhoneNumber: "+1 212 555 2368",
		Address:     "42 Baker Street London",
	})
	require.NoError(t, err)
	assert.Equal(t, "anna", out.Username)
	customers.AssertExpectations(t)
}

func TestProfile_UpdateValidationErrors(t *testing.T) {
	customers := new(MockCustomerRepository)
	customers.On("FindByID", mock.Anything, int64(3)).
		Return(&model.Customer{ID: 3, IsActive: true}, nil)

	uc := usecase.NewProfileUsecase(customers, nil, validator.NewProfileValidator())

	_, err := uc.Update(context.Background(), 3, 3, usecase.ProfileInput{FirstName: "anna"})
	_, ok := validator.AsValidationErrors(err)
	assert.True(t, ok)
	customers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProfile_Missing(t *testing.T) {
	customers := new(MockCustomerRepository)
	customers.On("FindByID", mock.Anything, int64(9)).Return(nil, repo.ErrNotFound)

	uc := usecase.NewProfileUsecase(customers, nil, validator.NewProfileValidator())

	_, err := uc.Get(context.Background(), 9, 9)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}
