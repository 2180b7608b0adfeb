package http

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/services/transactions/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionHandler_OrderSummary(t *testing.T) {
	id := uuid.New().String()

	t.Run("create", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockUC := mocks.NewMockTransactionUC(ctrl)
		mockUC.EXPECT().SaveOrderSummary(gomock.Any(), &models.OrderTransactionSummary{ID: id, NumTransactions: 2}).Return(nil)
		handler := NewTransactionHandler(mockUC)
		c, rec := newContext(http.MethodPost, "/", `{"id":"`+id+`","numTransactions":2}`, "")

		require.NoError(t, handler.CreateOrderSummary(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("update takes id from path", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockUC := mocks.NewMockTransactionUC(ctrl)
		mockUC.EXPECT().SaveOrderSummary(gomock.Any(), &models.OrderTransactionSummary{ID: id, NumTransactions: 3}).Return(nil)
		handler := NewTransactionHandler(mockUC)
		c, rec := newContext(http.MethodPut, "/", `{"numTransactions":3}`, id)

		require.NoError(t, handler.UpdateOrderSummary(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("update with mismatching id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		handler := NewTransactionHandler(mocks.NewMockTransactionUC(ctrl))
		c, rec := newContext(http.MethodPut, "/", `{"id":"`+uuid.New().String()+`","numTransactions":3}`, id)

		require.NoError(t, handler.UpdateOrderSummary(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apperror.CodeIDMismatch.Code, decodeErrors(t, rec).Errors[0].Code)
	})
}

func TestTransactionHandler_InvoiceSummary(t *testing.T) {
	id := uuid.New().String()

	testCases := []struct {
		name         string
		returnErr    error
		expectStatus int
	}{
		{name: "saved", expectStatus: http.StatusNoContent},
		{name: "negative count", returnErr: apperror.Unprocessable(apperror.CodeInvalidValue, apperror.Param("numPendingPayments", "-1")), expectStatus: http.StatusUnprocessableEntity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockUC := mocks.NewMockTransactionUC(ctrl)
			mockUC.EXPECT().SaveInvoiceSummary(gomock.Any(), &models.InvoiceTransactionSummary{
				ID:                 id,
				NumPendingPayments: 1,
				NumPaymentsCredits: 2,
			}).Return(tc.returnErr)
			handler := NewTransactionHandler(mockUC)
			c, rec := newContext(http.MethodPut, "/", `{"numPendingPayments":1,"numPaymentsCredits":2}`, id)

			require.NoError(t, handler.UpdateInvoiceSummary(c))
			assert.Equal(t, tc.expectStatus, rec.Code)
		})
	}
}

func TestTransactionHandler_CreateInvoiceSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New().String()
	mockUC := mocks.NewMockTransactionUC(ctrl)
	mockUC.EXPECT().SaveInvoiceSummary(gomock.Any(), gomock.Any()).Return(nil)
	handler := NewTransactionHandler(mockUC)
	c, rec := newContext(http.MethodPost, "/", `{"id":"`+id+`","numPendingPayments":1,"numPaymentsCredits":1}`, "")

	require.NoError(t, handler.CreateInvoiceSummary(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
