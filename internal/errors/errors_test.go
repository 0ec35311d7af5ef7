package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{fmt.Errorf("load: %w", ErrCategoryNotFound), http.StatusNotFound, "CATEGORY_NOT_FOUND"},
		{ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND"},
		{ErrCategoryExists, http.StatusConflict, "CATEGORY_EXISTS"},
		{ErrEmptyCart, http.StatusBadRequest, "EMPTY_CART"},
		{ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
		{fmt.Errorf("%w: dial tcp: timeout", ErrPaymentInit), http.StatusInternalServerError, "PAYMENT_INIT_FAILED"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, got.StatusCode)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, got.Message, got.ToErrorResponse().Error)
		})
	}
}
