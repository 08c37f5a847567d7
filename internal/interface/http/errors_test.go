package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-logmanager/internal/application"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{application.ErrParameterMissing, http.StatusBadRequest},
		{application.ErrIllegalColor, http.StatusBadRequest},
		{application.ErrNoUsersYet, http.StatusBadRequest},
		{application.ErrUserCannotDeleteSelf, http.StatusBadRequest},
		{application.InvalidIDFormat("x"), http.StatusBadRequest},
		{application.ErrUserNotFound, http.StatusNotFound},
		{application.ErrLogNotFound, http.StatusNotFound},
		{application.ErrUserAlreadyExists, http.StatusConflict},
		{application.ErrUserReferenced, http.StatusConflict},
		{application.ErrUsersReferenced, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", application.ErrUserNotFound), http.StatusNotFound},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs("1, 2,,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	_, err = parseIDs("1,zwei")
	require.Error(t, err)
	assert.ErrorIs(t, err, application.ErrInvalidParameter)
	assert.Contains(t, err.Error(), `For input string: "zwei"`)
}
