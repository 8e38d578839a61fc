package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cybake-bridge/internal/features/imports/domain"
	orderdomain "cybake-bridge/internal/features/orders/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testGID = "gid://shopify/Order/1001"

func validOrder() *orderdomain.Order {
	return &orderdomain.Order{
		ID:               testGID,
		LegacyResourceID: "1001",
		Name:             "#1001",
		Tags:             []string{"Local Delivery", "15 June 2025", "Tuesday run"},
		Email:            "jane@example.com",
		CreatedAt:        time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC),
		ShippingAddress: &orderdomain.Address{
			Name:     "Jane Baker",
			Address1: "1 Mill Lane",
			Zip:      "YO1 7HH",
		},
		TotalAmount: decimal.RequireFromString("12.00"),
		LineItems: []orderdomain.LineItem{
			{SKU: "101", Quantity: 2, Name: "White Loaf", UnitPrice: decimal.RequireFromString("6.00")},
		},
	}
}

type importFixture struct {
	orders    *MockOrderProvider
	submitter *MockSubmitter
	logs      *MockLogRepository
	service   *ImportService
}

func newImportFixture() *importFixture {
	f := &importFixture{
		orders:    new(MockOrderProvider),
		submitter: new(MockSubmitter),
		logs:      new(MockLogRepository),
	}
	f.service = NewImportService(f.orders, f.submitter, f.logs)
	return f
}

func (f *importFixture) assertExpectations(t *testing.T) {
	f.orders.AssertExpectations(t)
	f.submitter.AssertExpectations(t)
	f.logs.AssertExpectations(t)
}

func logWith(status domain.ImportStatus, errorPrefix string) any {
	return mock.MatchedBy(func(l *domain.ImportLog) bool {
		return l.ShopifyOrderID == "1001" && l.Status == status && strings.HasPrefix(l.ErrorMessage, errorPrefix)
	})
}

func TestImportService_Import_Success(t *testing.T) {
	f := newImportFixture()
	ctx := context.Background()

	f.orders.On("GetOrder", mock.Anything, testGID).Return(validOrder(), nil).Once()
	f.logs.On("FindSuccessful", mock.Anything, "1001").Return(nil, domain.ErrLogNotFound).Once()
	f.submitter.On("Submit", mock.Anything, mock.AnythingOfType("[]uint8")).
		Return(&domain.SubmissionResult{Success: true, HTTPStatus: 200, ImportItemID: "IMP-1", Body: []byte(`{"ImportItemId":"IMP-1"}`)}, nil).Once()
	f.logs.On("Record", mock.Anything, mock.MatchedBy(func(l *domain.ImportLog) bool {
		return l.Status == domain.StatusSuccess &&
			l.CybakeImportID == "IMP-1" &&
			l.HTTPStatus == 200 &&
			l.OrderType == "Local Delivery" &&
			l.DeliveryDate == "2025-06-15" &&
			len(l.PayloadSent) > 0
	})).Return(true, nil).Once()
	f.orders.On("AddTags", mock.Anything, testGID, []string{domain.TagImported}).Return(nil).Once()

	result, err := f.service.Import(ctx, domain.ImportRequest{OrderID: "1001", OrderName: "#1001"})

	require.NoError(t, err)
	assert.Equal(t, &domain.ImportResult{Outcome: domain.OutcomeImported, OrderNumber: "#1001", CybakeImportID: "IMP-1"}, result)
	f.assertExpectations(t)
}

func TestImportService_Import_AcceptsGlobalID(t *testing.T) {
	f := newImportFixture()

	f.orders.On("GetOrder", mock.Anything, testGID).Return(validOrder(), nil).Once()
	f.logs.On("FindSuccessful", mock.Anything, "1001").Return(&domain.ImportLog{OrderNumber: "#1001", CybakeImportID: "IMP-0"}, nil).Once()

	result, err := f.service.Import(context.Background(), domain.ImportRequest{OrderID: testGID})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDuplicate, result.Outcome)
	f.assertExpectations(t)
}

func TestImportService_Import_DuplicateShortCircuits(t *testing.T) {
	f := newImportFixture()

	f.orders.On("GetOrder", mock.Anything, testGID).Return(validOrder(), nil).Once()
	f.logs.On("FindSuccessful", mock.Anything, "1001").
		Return(&domain.ImportLog{OrderNumber: "#1001", Status: domain.StatusSuccess, CybakeImportID: "IMP-0"}, nil).Once()

	result, err := f.service.Import(context.Background(), domain.ImportRequest{OrderID: "1001"})

	require.NoError(t, err)
	assert.Equal(t, &domain.ImportResult{Outcome: domain.OutcomeDuplicate, OrderNumber: "#1001", CybakeImportID: "IMP-0"}, result)
	f.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	f.logs.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "AddTags", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestImportService_Import_ValidationFailure(t *testing.T) {
	f := newImportFixture()
	order := validOrder()
	order.Email = ""
	order.ShippingAddress.Zip = ""

	f.orders.On("GetOrder", mock.Anything, testGID).Return(order, nil).Once()
	f.logs.On("FindSuccessful", mock.Anything, "1001").Return(nil, domain.ErrLogNotFound).Once()
	f.logs.On("Record", mock.Anything, mock.MatchedBy(func(l *domain.ImportLog) bool {
		return l.Status == domain.StatusFailed &&
			l.ErrorMessage == "Validation: Missing email; Missing postcode" &&
			len(l.PayloadSent) > 0
	})).Return(true, nil).Once()
	f.orders.On("AddTags", mock.Anything, testGID, []string{domain.TagFailed}).Return(nil).Once()

	result, err := f.service.Import(context.Background(), domain.ImportRequest{OrderID: "1001"})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeInvalid, result.Outcome)
	assert.Equal(t, []string{"Missing email", "Missing postcode"}, result.ValidationErrors)
	f.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestImportService_Import_Rejected(t *testing.T) {
	f := newImportFixture()
	rejection := &domain.SubmissionResult{
		HTTPStatus: 400,
		Error:      "Cybake returned 400 Bad Request: bad sku",
		Body:       []byte(`{"raw":"bad sku"}`),
	}

	f.orders.On("GetOrder", mock.Anything, testGID).Return(validOrder(), nil).Once()
	f.logs.On("FindSuccessful", mock.Anything, "1001").Return(nil, domain.ErrLogNotFound).Once()
	f.submitter.On("Submit", mock.Anything, mock.Anything).Return(rejection, nil).Once()
	f.logs.On("Record", mock.Anything, logWith(domain.StatusFailed, "Cybake returned 400")).Return(true, nil).Once()
	f.orders.On("AddTags", mock.Anything, testGID, []string{domain.TagFailed}).Return(nil).Once()

	result, err := f.service.Import(context.Background(), domain.ImportRequest{OrderID: "1001"})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejected, result.Outcome)
	assert.Equal(t, rejection.Error, result.Error)
	f.assertExpectations(t)
}

func TestImportService_Import_OrderNotFound(t *testing.T) {
	f := newImportFixture()

	f.orders.On("GetOrder", mock.Anything, testGID).Return(nil, orderdomain.ErrOrderNotFound).Once()
	f.logs.On("Record", mock.Anything, mock.MatchedBy(func(l *domain.ImportLog) bool {
		return l.OrderNumber == "#1001" && l.ErrorMessage == "Order not found in Shopify"
	})).Return(true, nil).Once()

	result, err := f.service.Import(context.Background(), domain.ImportRequest{OrderID: "1001", OrderName: "#1001"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	f.assertExpectations(t)
}

func TestImportService_Import_SystemError(t *testing.T) {
	f := newImportFixture()

	f.orders.On("GetOrder", mock.Anything, testGID).Return(nil, errors.New("connection reset")).Once()
	f.logs.On("Record", mock.Anything, mock.MatchedBy(func(l *domain.ImportLog) bool {
		return l.OrderNumber == domain.UnknownValue &&
			l.ErrorMessage == "System error: failed to fetch order: connection reset"
	})).Return(true, nil).Once()

	result, err := f.service.Import(context.Background(), domain.ImportRequest{OrderID: "1001"})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	f.assertExpectations(t)
}

func TestImportService_Import_DuplicateCheckFailureDoesNotSubmit(t *testing.T) {
	f := newImportFixture()

	f.orders.On("GetOrder", mock.Anything, testGID).Return(validOrder(), nil).Once()
	f.logs.On("FindSuccessful", mock.Anything, "1001").Return(nil, errors.New("db down")).Once()
	f.logs.On("Record", mock.Anything, logWith(domain.StatusFailed, "System error: failed to check for duplicate import")).Return(false, errors.New("db down")).Once()

	_, err := f.service.Import(context.Background(), domain.ImportRequest{OrderID: "1001"})

	require.Error(t, err)
	f.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestImportService_Import_SideEffectFailuresAreSwallowed(t *testing.T) {
	f := newImportFixture()

	f.orders.On("GetOrder", mock.Anything, testGID).Return(validOrder(), nil).Once()
	f.logs.On("FindSuccessful", mock.Anything, "1001").Return(nil, domain.ErrLogNotFound).Once()
	f.submitter.On("Submit", mock.Anything, mock.Anything).Return(&domain.SubmissionResult{Success: true, HTTPStatus: 201}, nil).Once()
	f.logs.On("Record", mock.Anything, mock.Anything).Return(false, errors.New("log store unavailable")).Once()
	f.orders.On("AddTags", mock.Anything, testGID, []string{domain.TagImported}).Return(errors.New("throttled")).Once()

	result, err := f.service.Import(context.Background(), domain.ImportRequest{OrderID: "1001"})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeImported, result.Outcome)
	f.assertExpectations(t)
}

func TestImportService_Import_MissingOrderID(t *testing.T) {
	f := newImportFixture()

	_, err := f.service.Import(context.Background(), domain.ImportRequest{OrderID: "  "})

	assert.ErrorIs(t, err, ErrMissingOrderID)
	f.orders.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
}

func TestImportService_Import_Locking(t *testing.T) {
	t.Run("HeldLockRejects", func(t *testing.T) {
		f := newImportFixture()
		locker := new(MockLocker)
		f.service.WithLocker(locker, time.Minute)

		locker.On("Acquire", mock.Anything, "1001", time.Minute).Return("", false, nil).Once()

		_, err := f.service.Import(context.Background(), domain.ImportRequest{OrderID: "1001"})

		assert.ErrorIs(t, err, ErrImportInProgress)
		f.orders.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
		locker.AssertExpectations(t)
	})

	t.Run("AcquiredLockIsReleased", func(t *testing.T) {
		f := newImportFixture()
		locker := new(MockLocker)
		f.service.WithLocker(locker, time.Minute)

		locker.On("Acquire", mock.Anything, "1001", time.Minute).Return("tok", true, nil).Once()
		locker.On("Release", mock.Anything, "1001", "tok").Return(nil).Once()
		f.orders.On("GetOrder", mock.Anything, testGID).Return(validOrder(), nil).Once()
		f.logs.On("FindSuccessful", mock.Anything, "1001").Return(&domain.ImportLog{OrderNumber: "#1001"}, nil).Once()

		_, err := f.service.Import(context.Background(), domain.ImportRequest{OrderID: "1001"})

		require.NoError(t, err)
		locker.AssertExpectations(t)
		f.assertExpectations(t)
	})

	t.Run("LockStoreDownDegrades", func(t *testing.T) {
		f := newImportFixture()
		locker := new(MockLocker)
		f.service.WithLocker(locker, time.Minute)

		locker.On("Acquire", mock.Anything, "1001", time.Minute).Return("", false, errors.New("redis down")).Once()
		f.orders.On("GetOrder", mock.Anything, testGID).Return(validOrder(), nil).Once()
		f.logs.On("FindSuccessful", mock.Anything, "1001").Return(&domain.ImportLog{OrderNumber: "#1001"}, nil).Once()

		result, err := f.service.Import(context.Background(), domain.ImportRequest{OrderID: "1001"})

		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeDuplicate, result.Outcome)
		locker.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})
}
