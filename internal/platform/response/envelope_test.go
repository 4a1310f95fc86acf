package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestOK_Defaults(t *testing.T) {
	t.Parallel()

	env := OK(item{ID: 1, Name: "testuser"})

	assert.Equal(t, CodeSuccess, env.Code)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusOK, env.HTTPStatus())

	b, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":200,"msg":"success","success":true,"data":{"id":1,"name":"testuser"}}`, string(b))
}

func TestOK_EmptyListIsArray(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(OK([]item{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":200,"msg":"success","success":true,"data":[]}`, string(b))
}

func TestFailEnvelopes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		env        Data[item]
		wantStatus int
		wantJSON   string
	}{
		{
			name:       "not found",
			env:        NotFound[item]("user not found"),
			wantStatus: http.StatusNotFound,
			wantJSON:   `{"code":404,"msg":"user not found","success":false,"data":null}`,
		},
		{
			name:       "storage error",
			env:        Error[item]("create user", errors.New("disk full")),
			wantStatus: http.StatusInternalServerError,
			wantJSON:   `{"code":500,"msg":"create user failed: disk full","success":false,"data":null}`,
		},
		{
			name:       "business failure",
			env:        Failure[item]("name: must contain only letters and digits"),
			wantStatus: http.StatusBadRequest,
			wantJSON:   `{"code":601,"msg":"name: must contain only letters and digits","success":false,"data":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantStatus, tt.env.HTTPStatus())
			b, err := json.Marshal(tt.env)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(b))
		})
	}
}

func TestCrudEnvelopes(t *testing.T) {
	t.Parallel()

	ok := Deleted("user deleted", "user_id", 7)
	b, err := json.Marshal(ok)
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_success":true,"message":"user deleted","result":{"user_id":7}}`, string(b))
	assert.Equal(t, http.StatusOK, ok.HTTPStatus())

	nf := CrudNotFound("address not found")
	b, err = json.Marshal(nf)
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_success":false,"message":"address not found","result":null}`, string(b))
	assert.Equal(t, http.StatusNotFound, nf.HTTPStatus())

	fail := CrudError("delete user", errors.New("locked"))
	assert.Equal(t, "delete user failed: locked", fail.Message)
	assert.Equal(t, http.StatusInternalServerError, fail.HTTPStatus())

	assert.Equal(t, http.StatusOK, Crud{}.HTTPStatus())
}

func TestNewValidationFailure(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	v := NewValidationFailure([]FieldError{{Field: "name", Message: "name is a required field"}}, now)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"code":400,
		"msg":"request parameter validation failed",
		"success":false,
		"data":[{"field":"name","message":"name is a required field"}],
		"time":"2026-01-02T03:04:05Z"
	}`, string(b))
	assert.Equal(t, http.StatusBadRequest, v.HTTPStatus())

	empty := NewValidationFailure(nil, now)
	assert.NotNil(t, empty.Data)
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusOK, StatusFor(CodeSuccess))
	assert.Equal(t, http.StatusForbidden, StatusFor(CodeForbidden))
	assert.Equal(t, http.StatusBadRequest, StatusFor(CodeFailure))
	assert.Equal(t, http.StatusBadRequest, StatusFor(0))
}
