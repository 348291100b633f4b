package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrNotFoundSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("get slot %q: %w", DefaultSlotKey, ErrNotFound)

	var repoErr RepositoryError
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.As(err, &repoErr))
	assert.Equal(t, "not found", repoErr.Error())
}
