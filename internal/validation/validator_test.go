package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

type sample struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required"`
	Likes    int    `json:"likes" validate:"min=0"`
	Website  string `json:"website" validate:"omitempty,url"`
	Internal string `json:"-"`
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct("User", sample{Username: "root", Password: "secret"}))
}

func TestStruct_RequiredMessage(t *testing.T) {
	v := New()
	err := v.Struct("User", sample{Password: "secret"})
	require.Error(t, err)

	f := apperrors.ToFailure(err)
	assert.Equal(t, apperrors.KindValidationFailed, f.Kind)
	assert.Equal(t, "User validation failed: username: Path `username` is required.", f.Message)
	assert.Equal(t, []apperrors.Violation{{Field: "username", Rule: "required"}}, f.Violations)
}

func TestStruct_MultipleViolationsJoined(t *testing.T) {
	v := New()
	err := v.Struct("User", sample{Username: "ab", Likes: -1, Website: "nope"})
	require.Error(t, err)

	f := apperrors.ToFailure(err)
	assert.Equal(t,
		"User validation failed: username: Path `username` (`ab`) is shorter than the minimum allowed length (3)., "+
			"password: Path `password` is required., "+
			"likes: Path `likes` (-1) is less than minimum allowed value (0)., "+
			"website: Validator failed for path `website` with value `nope`",
		f.Message)
	assert.Len(t, f.Violations, 4)
	assert.Equal(t, "url", f.Violations[3].Rule)
}
