package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bloomview/bloomview-api/internal/entity"
	"github.com/bloomview/bloomview-api/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Insert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func validInput() SubmitInquiryInput {
	return SubmitInquiryInput{
		Name:    "Ada",
		Email:   "ada@x.com",
		Service: "IT Solutions",
		Message: "Hi",
	}
}

func TestSubmitInquirySuccess(t *testing.T) {
	repo := new(MockLeadRepository)
	events := new(MockPublisher)

	var inserted *entity.Lead
	repo.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(*entity.Lead)
	}).Return(nil)
	events.On("PublishLeadCaptured", mock.Anything, mock.Anything).Return(nil)

	uc := NewSubmitInquiryUseCase(repo, events)

	out, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, out)

	require.NotNil(t, inserted)
	assert.Equal(t, out.ID, inserted.ID)
	assert.NotEmpty(t, inserted.ID)
	assert.Equal(t, "Ada", inserted.Name)
	assert.Equal(t, "ada@x.com", inserted.Email)
	assert.Equal(t, "IT Solutions", inserted.Service)
	assert.Equal(t, "Hi", inserted.Message)
	assert.Equal(t, entity.StatusNew, inserted.Status)
	assert.False(t, inserted.CreatedAt.IsZero())

	events.AssertCalled(t, "PublishLeadCaptured", mock.Anything, mock.MatchedBy(func(p queue.LeadCapturedPayload) bool {
		return p.LeadID == inserted.ID && p.Email == "ada@x.com"
	}))
}

func TestSubmitInquiryValidation(t *testing.T) {
	cases := []struct {
		name  string
		input SubmitInquiryInput
		field string
	}{
		{"missing name", SubmitInquiryInput{Email: "a@x.com", Service: "s", Message: "m"}, "name"},
		{"missing email", SubmitInquiryInput{Name: "a", Service: "s", Message: "m"}, "email"},
		{"invalid email", SubmitInquiryInput{Name: "a", Email: "not-an-email", Service: "s", Message: "m"}, "email"},
		{"missing service", SubmitInquiryInput{Name: "a", Email: "a@x.com", Message: "m"}, "service"},
		{"missing message", SubmitInquiryInput{Name: "a", Email: "a@x.com", Service: "s"}, "message"},
		{"blank message", SubmitInquiryInput{Name: "a", Email: "a@x.com", Service: "s", Message: "   "}, "message"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockLeadRepository)
			uc := NewSubmitInquiryUseCase(repo, nil)

			out, err := uc.Execute(context.Background(), tc.input)
			assert.Nil(t, out)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))

			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, tc.field, errs[0].Field)

			repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitInquiryStorageFailure(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("db down"))

	uc := NewSubmitInquiryUseCase(repo, nil)

	out, err := uc.Execute(context.Background(), validInput())
	assert.Nil(t, out)
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
}

func TestSubmitInquiryPublishFailureIsNotFatal(t *testing.T) {
	repo := new(MockLeadRepository)
	events := new(MockPublisher)

	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	events.On("PublishLeadCaptured", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	uc := NewSubmitInquiryUseCase(repo, events)

	out, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
}

func TestSubmitInquiryNoPublisherConfigured(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	uc := NewSubmitInquiryUseCase(repo, nil)

	out, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
}
