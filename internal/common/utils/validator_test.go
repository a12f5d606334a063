package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type swipePayload struct {
	TargetUserID int64  `json:"target_user_id" validate:"required"`
	Kind         string `json:"kind" validate:"required,oneof=like dislike superlike"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(&swipePayload{TargetUserID: 2, Kind: "like"}))

	err := ValidateStruct(&swipePayload{Kind: "like"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TargetUserID is required")

	err = ValidateStruct(&swipePayload{TargetUserID: 2, Kind: "maybe"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Kind must be one of")
}
