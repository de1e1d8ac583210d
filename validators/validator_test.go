package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Desc string `json:"desc" validate:"required,max=5"`
	Img  string `json:"img" validate:"omitempty,url"`
}

func TestValidateAndDescribe(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(sample{Desc: "hi"}))

	err := v.Validate(sample{})
	require.Error(t, err)
	assert.Equal(t, "desc is required", Describe(err))

	err = v.Validate(sample{Desc: "too long", Img: "not a url"})
	require.Error(t, err)
	assert.Equal(t, "desc must be at most 5 characters; img must be a valid URL", Describe(err))
}

func TestDescribeForeignError(t *testing.T) {
	assert.Equal(t, "boom", Describe(errors.New("boom")))
}
